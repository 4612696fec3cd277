package slidescript

import (
	"errors"
	"testing"
)

func TestParseFencedSlidesJSON(t *testing.T) {
	script := "Here is your deck:\n```json\n{\"slides\":[" +
		"{\"slideType\":\"title\",\"title\":\"Intro to Go\",\"speakerNote\":\"Welcome.\"}," +
		"{\"title\":\"Goroutines\",\"content\":[\"cheap\",\"scheduled by runtime\"]}," +
		"{\"title\":\"Summary\",\"content\":\"wrap up\"}" +
		"]}\n```\nLet me know if you need changes."

	slides, source, err := Parse(script)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if source != SourceSlidesJSON {
		t.Fatalf("expected source %q, got %q", SourceSlidesJSON, source)
	}
	if len(slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(slides))
	}
	for i, s := range slides {
		if s.SlideIndex != i {
			t.Fatalf("slide %d has index %d", i, s.SlideIndex)
		}
	}
	if slides[0].SlideType != TypeTitle {
		t.Fatalf("expected explicit title type kept, got %q", slides[0].SlideType)
	}
	if slides[1].Content != "cheap\nscheduled by runtime" {
		t.Fatalf("bullet content not joined: %q", slides[1].Content)
	}
	if slides[2].SlideType != TypeSummary {
		t.Fatalf("summary slide not inferred, got %q", slides[2].SlideType)
	}
}

func TestParseBareArray(t *testing.T) {
	script := `[{"title":"A"},{"title":"B"}]`

	slides, source, err := Parse(script)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if source != SourceSlidesJSON {
		t.Fatalf("expected source %q, got %q", SourceSlidesJSON, source)
	}
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
}

func TestParseMinimalSlidesInferContent(t *testing.T) {
	script := "```json\n{\"slides\":[{\"title\":\"A\"},{\"title\":\"B\"}]}\n```"

	slides, _, err := Parse(script)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
	if slides[0].SlideIndex != 0 || slides[1].SlideIndex != 1 {
		t.Fatalf("indexes not renumbered: %d, %d", slides[0].SlideIndex, slides[1].SlideIndex)
	}
	if slides[0].SlideType != TypeContent || slides[1].SlideType != TypeContent {
		t.Fatalf("expected content type for both, got %q and %q", slides[0].SlideType, slides[1].SlideType)
	}
}

func TestParseOutlineReinterpretation(t *testing.T) {
	script := `{
		"title": "Databases 101",
		"agenda": ["Relational model", "SQL basics"],
		"objectives": ["Explain normalization"],
		"sections": [
			{"title": "Part 1: Relational model", "subsections": [
				{"title": "Tables", "content": ["rows", "columns"]},
				"Keys"
			]},
			{"title": "Part 2: SQL", "subsections": [{"title": "SELECT"}]}
		],
		"summary": ["Normalize first"],
		"reviewQuestions": ["What is a primary key?"]
	}`

	slides, source, err := Parse(script)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if source != SourceOutlineJSON {
		t.Fatalf("expected source %q, got %q", SourceOutlineJSON, source)
	}
	// title + agenda + objectives + 2 section headers + 3 subsections + summary + qa
	if len(slides) != 10 {
		t.Fatalf("expected 10 slides, got %d", len(slides))
	}
	if slides[0].SlideType != TypeTitle {
		t.Fatalf("first slide should be title, got %q", slides[0].SlideType)
	}
	if slides[3].SlideType != TypeSectionHeader {
		t.Fatalf("expected section header at index 3, got %q", slides[3].SlideType)
	}
	if slides[4].Title != "Tables" || slides[4].Content != "rows\ncolumns" {
		t.Fatalf("subsection slide wrong: %+v", slides[4])
	}
	if slides[5].Title != "Keys" {
		t.Fatalf("string subsection not synthesized: %+v", slides[5])
	}
	last := slides[len(slides)-1]
	if last.SlideType != TypeQA {
		t.Fatalf("last slide should be qa, got %q", last.SlideType)
	}
}

func TestParseMarkdownFallback(t *testing.T) {
	script := "**Slide 1: Welcome to the lesson**\n" +
		"[Content]: Opening remarks\n" +
		"[Visual Idea]: Campus photo\n" +
		"[Speaker Notes]: Greet the class warmly.\n\n" +
		"**Slide 2: Agenda**\n" +
		"Content: First topic\nSecond topic\n" +
		"Speaker Note: Walk through the plan.\n\n" +
		"**Slide 3: Closing**\n" +
		"Some free text without field markers.\n"

	slides, source, err := Parse(script)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if source != SourceMarkdown {
		t.Fatalf("expected source %q, got %q", SourceMarkdown, source)
	}
	if len(slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(slides))
	}
	if slides[0].Title != "Welcome to the lesson" {
		t.Fatalf("title not captured: %q", slides[0].Title)
	}
	if slides[0].Content != "Opening remarks" {
		t.Fatalf("content not captured: %q", slides[0].Content)
	}
	if slides[0].VisualIdea != "Campus photo" {
		t.Fatalf("visual idea not captured: %q", slides[0].VisualIdea)
	}
	if slides[0].SpeakerNote != "Greet the class warmly." {
		t.Fatalf("speaker note not captured: %q", slides[0].SpeakerNote)
	}
	if slides[1].SlideType != TypeAgenda {
		t.Fatalf("agenda not inferred: %q", slides[1].SlideType)
	}
	if slides[1].SpeakerNote != "Walk through the plan." {
		t.Fatalf("unbracketed speaker note not captured: %q", slides[1].SpeakerNote)
	}
}

func TestParseNoSlides(t *testing.T) {
	for _, script := range []string{"", "{}", "just prose, no structure at all", `{"foo":"bar"}`} {
		_, _, err := Parse(script)
		if !errors.Is(err, ErrNoSlides) {
			t.Fatalf("script %q: expected ErrNoSlides, got %v", script, err)
		}
	}
	if ErrNoSlides.Error() != "No slides found in script" {
		t.Fatalf("unexpected error message: %q", ErrNoSlides.Error())
	}
}

func TestInferSlideType(t *testing.T) {
	cases := []struct {
		title string
		index int
		want  string
	}{
		{"Nội dung bài học", 1, TypeAgenda},
		{"Learning Objectives", 2, TypeObjectives},
		{"Tóm tắt", 9, TypeSummary},
		{"Q&A", 10, TypeQA},
		{"Introduction to Networks", 0, TypeTitle},
		{"Introduction to Networks", 3, TypeContent},
		{"Phần 2: Giao thức", 4, TypeSectionHeader},
		{"TCP handshake", 5, TypeContent},
	}
	for _, c := range cases {
		if got := inferSlideType(c.title, c.index); got != c.want {
			t.Fatalf("inferSlideType(%q, %d) = %q, want %q", c.title, c.index, got, c.want)
		}
	}
}
