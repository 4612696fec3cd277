// Package slidescript normalizes AI-returned slide scripts into an ordered
// slide list. Input shape varies between runs: fenced JSON with a slides
// array, a bare JSON array, an outline document returned where a slide list
// was expected, or a legacy Markdown format. Attempts run in that fixed
// order; the first one that yields slides wins.
package slidescript

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoSlides is fatal and non-retryable: the upstream model returned
// something no branch could interpret.
var ErrNoSlides = errors.New("No slides found in script")

// Source tags which parse branch produced the result.
type Source string

const (
	SourceSlidesJSON  Source = "slides_json"
	SourceOutlineJSON Source = "outline_json"
	SourceMarkdown    Source = "markdown"
)

const (
	TypeTitle         = "title"
	TypeAgenda        = "agenda"
	TypeObjectives    = "objectives"
	TypeContent       = "content"
	TypeSummary       = "summary"
	TypeQA            = "qa"
	TypeSectionHeader = "section_header"
)

type Slide struct {
	SlideIndex  int    `json:"slide_index"`
	SlideType   string `json:"slide_type"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	VisualIdea  string `json:"visual_idea"`
	SpeakerNote string `json:"speaker_note"`
}

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// Parse converts a raw script blob into an ordered slide list.
func Parse(script string) ([]Slide, Source, error) {
	candidate := ExtractFenced(script)

	var root any
	if err := json.Unmarshal([]byte(candidate), &root); err == nil {
		if slides, ok := slidesFromJSON(root); ok {
			return finalize(slides), SourceSlidesJSON, nil
		}
		if slides, ok := slidesFromOutline(root); ok {
			return finalize(slides), SourceOutlineJSON, nil
		}
	}

	if slides := slidesFromMarkdown(script); len(slides) > 0 {
		return finalize(slides), SourceMarkdown, nil
	}
	return nil, "", ErrNoSlides
}

// ExtractFenced pulls the inner text of the first fenced code block, or
// returns the trimmed input when no fence is present. Model replies wrap
// structured output in fences more often than not.
func ExtractFenced(text string) string {
	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// finalize renumbers slides and fills in missing or generic slide types.
func finalize(slides []Slide) []Slide {
	for i := range slides {
		slides[i].SlideIndex = i
		if slides[i].SlideType == "" || slides[i].SlideType == TypeContent {
			slides[i].SlideType = inferSlideType(slides[i].Title, i)
		}
	}
	return slides
}
