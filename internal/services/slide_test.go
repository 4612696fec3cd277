package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/repos"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/slidescript"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

const threeSlideScript = "```json\n" + `{"slides":[
  {"slide_type":"title","title":"Process Scheduling","speaker_note":"Welcome."},
  {"title":"Round Robin","content":["Fixed quantum","Preemptive"],"speaker_note":"Explain RR."},
  {"title":"Summary","content":"Key points"}
]}` + "\n```"

const twoSlideScript = "```json\n" + `{"slides":[
  {"slide_type":"title","title":"Process Scheduling v2"},
  {"title":"Round Robin v2","content":"Updated content"}
]}` + "\n```"

func TestParseAndUpsertCreatesSlides(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	svc := NewSlideService(db, log, repos.NewSlideRepo(db, log))
	ctx := context.Background()

	u := seedUser(t, db, "slides@example.com")
	subj := seedSubject(t, db, u.ID)
	lesson := seedLesson(t, db, subj.ID, u.ID)

	created, source, err := svc.ParseAndUpsert(ctx, lesson.ID, threeSlideScript)
	if err != nil {
		t.Fatalf("ParseAndUpsert: %v", err)
	}
	if source != slidescript.SourceSlidesJSON {
		t.Fatalf("source = %q, want %q", source, slidescript.SourceSlidesJSON)
	}
	if len(created) != 3 {
		t.Fatalf("len(created) = %d, want 3", len(created))
	}
	for i, s := range created {
		if s.SlideIndex != i {
			t.Fatalf("slide %d has index %d", i, s.SlideIndex)
		}
		if s.Status != types.SlideStatusParsed {
			t.Fatalf("slide %d status = %q, want %q", i, s.Status, types.SlideStatusParsed)
		}
	}
	if created[1].Content != "Fixed quantum\nPreemptive" {
		t.Fatalf("bullet content = %q", created[1].Content)
	}
}

func TestParseAndUpsertPreservesArtifactsByIndex(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	slideRepo := repos.NewSlideRepo(db, log)
	svc := NewSlideService(db, log, slideRepo)
	ctx := context.Background()

	u := seedUser(t, db, "preserve@example.com")
	subj := seedSubject(t, db, u.ID)
	lesson := seedLesson(t, db, subj.ID, u.ID)

	first, _, err := svc.ParseAndUpsert(ctx, lesson.ID, threeSlideScript)
	if err != nil {
		t.Fatalf("first ParseAndUpsert: %v", err)
	}

	// Simulate a completed pipeline run on slide index 1.
	optimized := datatypes.JSON([]byte(`{"title":"Round Robin","content":["a"],"speakerNote":"n"}`))
	err = slideRepo.UpdateFields(ctx, nil, first[1].ID, map[string]interface{}{
		"optimized_content_json": optimized,
		"image_url":              "/files/images/x/slide_1.webp",
		"image_prompt":           "diagram of a ready queue",
		"audio_url":              "/files/audio/x/slide_1.mp3",
		"audio_duration":         12.5,
	})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	second, _, err := svc.ParseAndUpsert(ctx, lesson.ID, twoSlideScript)
	if err != nil {
		t.Fatalf("second ParseAndUpsert: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("len(second) = %d, want 2", len(second))
	}
	if second[0].ID == first[0].ID {
		t.Fatalf("rows were not recreated")
	}
	if second[0].Status != types.SlideStatusParsed || second[0].ImageURL != "" {
		t.Fatalf("index 0 should start clean, got status=%q imageURL=%q", second[0].Status, second[0].ImageURL)
	}

	kept := second[1]
	if kept.Title != "Round Robin v2" {
		t.Fatalf("kept slide title = %q", kept.Title)
	}
	if kept.ImageURL != "/files/images/x/slide_1.webp" {
		t.Fatalf("image url not preserved: %q", kept.ImageURL)
	}
	if kept.AudioURL != "/files/audio/x/slide_1.mp3" || kept.AudioDuration != 12.5 {
		t.Fatalf("audio not preserved: url=%q duration=%v", kept.AudioURL, kept.AudioDuration)
	}
	if kept.ImagePrompt != "diagram of a ready queue" {
		t.Fatalf("image prompt not preserved: %q", kept.ImagePrompt)
	}
	if len(kept.OptimizedContentJSON) == 0 {
		t.Fatalf("optimized content not preserved")
	}
	if kept.Status != types.SlideStatusOptimized {
		t.Fatalf("kept status = %q, want %q", kept.Status, types.SlideStatusOptimized)
	}
}

func TestParseAndUpsertUnparsableLeavesSlidesUntouched(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	svc := NewSlideService(db, log, repos.NewSlideRepo(db, log))
	ctx := context.Background()

	u := seedUser(t, db, "untouched@example.com")
	subj := seedSubject(t, db, u.ID)
	lesson := seedLesson(t, db, subj.ID, u.ID)

	if _, _, err := svc.ParseAndUpsert(ctx, lesson.ID, threeSlideScript); err != nil {
		t.Fatalf("ParseAndUpsert: %v", err)
	}

	_, _, err := svc.ParseAndUpsert(ctx, lesson.ID, "no slides in here at all")
	if !errors.Is(err, slidescript.ErrNoSlides) {
		t.Fatalf("err = %v, want ErrNoSlides", err)
	}

	remaining, err := svc.GetByLesson(ctx, lesson.ID)
	if err != nil {
		t.Fatalf("GetByLesson: %v", err)
	}
	if len(remaining) != 3 {
		t.Fatalf("len(remaining) = %d, want 3", len(remaining))
	}
}

func TestUpdateSlideFields(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	svc := NewSlideService(db, log, repos.NewSlideRepo(db, log))
	ctx := context.Background()

	u := seedUser(t, db, "update@example.com")
	subj := seedSubject(t, db, u.ID)
	lesson := seedLesson(t, db, subj.ID, u.ID)

	created, _, err := svc.ParseAndUpsert(ctx, lesson.ID, threeSlideScript)
	if err != nil {
		t.Fatalf("ParseAndUpsert: %v", err)
	}

	updated, err := svc.UpdateSlide(ctx, created[0].ID, map[string]interface{}{
		"title":        "Edited Title",
		"speaker_note": "Edited note",
	})
	if err != nil {
		t.Fatalf("UpdateSlide: %v", err)
	}
	if updated.Title != "Edited Title" || updated.SpeakerNote != "Edited note" {
		t.Fatalf("update not applied: title=%q note=%q", updated.Title, updated.SpeakerNote)
	}

	same, err := svc.UpdateSlide(ctx, created[0].ID, map[string]interface{}{})
	if err != nil {
		t.Fatalf("UpdateSlide empty: %v", err)
	}
	if same.Title != "Edited Title" {
		t.Fatalf("empty update changed row: %q", same.Title)
	}
}
