package pptx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func buildTestDeck() *Deck {
	deck := &Deck{Title: "Process Scheduling", Author: "Test User"}
	deck.AddSlide(Slide{
		Kind:     KindTitle,
		Title:    "Process Scheduling",
		Subtitle: "CS 301",
		Notes:    "Welcome everyone.",
	})
	deck.AddSlide(Slide{
		Kind:    KindAgenda,
		Title:   "Agenda",
		Bullets: []string{"Round Robin", "Priority Scheduling", "MLFQ", "Summary"},
	})
	deck.AddSlide(Slide{
		Kind:    KindContent,
		Title:   "Round Robin",
		Bullets: []string{"Fixed quantum", "Preemptive"},
		Image:   &Image{Data: []byte("fake-png"), Ext: "png"},
		Audio:   &Audio{Data: []byte("fake-mp3"), Ext: "mp3"},
		Notes:   "Explain the quantum trade-off.",
	})
	return deck
}

func writeDeck(t *testing.T, deck *Deck) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	if err := deck.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	return zr
}

func readPart(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("part %s missing from archive", name)
	return ""
}

func TestWriteProducesExpectedParts(t *testing.T) {
	zr := writeDeck(t, buildTestDeck())

	required := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/notesMasters/notesMaster1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/slide3.xml",
		"ppt/slides/_rels/slide3.xml.rels",
		"ppt/notesSlides/notesSlide1.xml",
		"ppt/notesSlides/notesSlide3.xml",
		"ppt/media/image3.png",
		"ppt/media/audio3.mp3",
	}
	have := map[string]bool{}
	for _, f := range zr.File {
		have[f.Name] = true
	}
	for _, name := range required {
		if !have[name] {
			t.Fatalf("missing part %s", name)
		}
	}
}

func TestWriteEmptyDeckFails(t *testing.T) {
	var buf bytes.Buffer
	deck := &Deck{Title: "empty"}
	if err := deck.Write(&buf); err == nil {
		t.Fatalf("empty deck accepted")
	}
}

func TestPresentationDeclaresAllSlides(t *testing.T) {
	zr := writeDeck(t, buildTestDeck())

	pres := readPart(t, zr, "ppt/presentation.xml")
	if !strings.Contains(pres, `cx="9144000"`) || !strings.Contains(pres, `cy="5143500"`) {
		t.Fatalf("slide size missing: %s", pres)
	}
	if strings.Count(pres, "<p:sldId ") != 3 {
		t.Fatalf("expected 3 slide ids: %s", pres)
	}

	ct := readPart(t, zr, "[Content_Types].xml")
	for _, part := range []string{"/ppt/slides/slide1.xml", "/ppt/slides/slide2.xml", "/ppt/slides/slide3.xml"} {
		if !strings.Contains(ct, `PartName="`+part+`"`) {
			t.Fatalf("content types missing override for %s", part)
		}
	}
	if !strings.Contains(ct, `Extension="mp3"`) || !strings.Contains(ct, `Extension="png"`) {
		t.Fatalf("media defaults missing: %s", ct)
	}
}

func TestTitleSlideBranding(t *testing.T) {
	zr := writeDeck(t, buildTestDeck())

	slide1 := readPart(t, zr, "ppt/slides/slide1.xml")
	if !strings.Contains(slide1, brandColor) {
		t.Fatalf("title slide missing brand background")
	}
	if !strings.Contains(slide1, `sz="4400"`) {
		t.Fatalf("title slide missing 44pt title run")
	}
	if !strings.Contains(slide1, "Process Scheduling") || !strings.Contains(slide1, "CS 301") {
		t.Fatalf("title or subtitle text missing")
	}
}

func TestContentSlideEmbedsMedia(t *testing.T) {
	zr := writeDeck(t, buildTestDeck())

	slide3 := readPart(t, zr, "ppt/slides/slide3.xml")
	if !strings.Contains(slide3, "<p:pic>") {
		t.Fatalf("content slide missing picture shape")
	}
	if !strings.Contains(slide3, "<p:timing>") || !strings.Contains(slide3, "mediacall") {
		t.Fatalf("content slide missing audio auto-play timing")
	}
	if !strings.Contains(slide3, "• Fixed quantum") {
		t.Fatalf("bullet text missing")
	}

	rels := readPart(t, zr, "ppt/slides/_rels/slide3.xml.rels")
	if !strings.Contains(rels, "image3.png") || !strings.Contains(rels, "audio3.mp3") {
		t.Fatalf("media relationships missing: %s", rels)
	}
	if !strings.Contains(rels, "http://schemas.microsoft.com/office/2007/relationships/media") {
		t.Fatalf("ms media relationship missing: %s", rels)
	}

	notes := readPart(t, zr, "ppt/notesSlides/notesSlide3.xml")
	if !strings.Contains(notes, "Explain the quantum trade-off.") {
		t.Fatalf("notes text missing")
	}
}

func TestXMLEscaping(t *testing.T) {
	deck := &Deck{Title: "T"}
	deck.AddSlide(Slide{
		Kind:    KindContent,
		Title:   `Pointers & "references" <in C>`,
		Bullets: []string{"a < b", "b & c"},
	})
	zr := writeDeck(t, deck)

	slide1 := readPart(t, zr, "ppt/slides/slide1.xml")
	if strings.Contains(slide1, "<in C>") {
		t.Fatalf("unescaped angle brackets in slide xml")
	}
	if !strings.Contains(slide1, "Pointers &amp; &#34;references&#34; &lt;in C&gt;") {
		t.Fatalf("escaped title missing: %s", slide1)
	}
}
