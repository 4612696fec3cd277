package services

import (
	"context"
	"strings"
	"testing"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/repos"
)

func TestRenderLeavesUnmatchedPlaceholders(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	svc := NewPromptService(log, repos.NewPromptTemplateRepo(db, log))
	ctx := context.Background()

	if _, err := svc.CreateTemplate(ctx, "test.render", "Lesson {lesson_title} for {audience} using {missing}"); err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}

	out, err := svc.Render(ctx, "test.render", map[string]string{
		"lesson_title": "Deadlocks",
		"audience":     "sophomores",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "Lesson Deadlocks for sophomores using {missing}"
	if out != want {
		t.Fatalf("Render = %q, want %q", out, want)
	}
}

func TestBuildFullPromptUsesFallbackRole(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	svc := NewPromptService(log, repos.NewPromptTemplateRepo(db, log))
	ctx := context.Background()

	if _, err := svc.CreateTemplate(ctx, "test.body", "Generate an outline for {topic}."); err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}

	out, err := svc.BuildFullPrompt(ctx, "test.body", map[string]string{"topic": "paging"})
	if err != nil {
		t.Fatalf("BuildFullPrompt: %v", err)
	}
	if !strings.HasPrefix(out, fallbackSystemRole) {
		t.Fatalf("missing fallback role prefix: %q", out)
	}
	if !strings.HasSuffix(out, "Generate an outline for paging.") {
		t.Fatalf("missing rendered body: %q", out)
	}
}

func TestBuildFullPromptPrependsStoredRole(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	svc := NewPromptService(log, repos.NewPromptTemplateRepo(db, log))
	ctx := context.Background()

	if _, err := svc.CreateTemplate(ctx, SlugSystemRole, "You teach {course_name}."); err != nil {
		t.Fatalf("CreateTemplate role: %v", err)
	}
	if _, err := svc.CreateTemplate(ctx, "test.body", "Outline {topic}."); err != nil {
		t.Fatalf("CreateTemplate body: %v", err)
	}

	out, err := svc.BuildFullPrompt(ctx, "test.body", map[string]string{
		"course_name": "CS 301",
		"topic":       "paging",
	})
	if err != nil {
		t.Fatalf("BuildFullPrompt: %v", err)
	}
	if out != "You teach CS 301.\n\nOutline paging." {
		t.Fatalf("BuildFullPrompt = %q", out)
	}
}

func TestUpdateTemplateBumpsVersionAndVariables(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	svc := NewPromptService(log, repos.NewPromptTemplateRepo(db, log))
	ctx := context.Background()

	tpl, err := svc.CreateTemplate(ctx, "test.update", "Hello {name}")
	if err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	if tpl.Version != 1 {
		t.Fatalf("initial version = %d", tpl.Version)
	}
	if string(tpl.Variables) != `["name"]` {
		t.Fatalf("initial variables = %s", tpl.Variables)
	}

	updated, err := svc.UpdateTemplate(ctx, tpl.ID, "Hi {name}, welcome to {course_name} and {name}", nil)
	if err != nil {
		t.Fatalf("UpdateTemplate: %v", err)
	}
	if updated.Version != 2 {
		t.Fatalf("version after edit = %d, want 2", updated.Version)
	}
	if string(updated.Variables) != `["course_name","name"]` {
		t.Fatalf("variables after edit = %s", updated.Variables)
	}

	// Toggling active without content change must not bump the version.
	inactive := false
	toggled, err := svc.UpdateTemplate(ctx, tpl.ID, "", &inactive)
	if err != nil {
		t.Fatalf("UpdateTemplate toggle: %v", err)
	}
	if toggled.Version != 2 || toggled.IsActive {
		t.Fatalf("toggle result version=%d active=%v", toggled.Version, toggled.IsActive)
	}
}

func TestCreateTemplateRejectsDuplicateSlug(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	svc := NewPromptService(log, repos.NewPromptTemplateRepo(db, log))
	ctx := context.Background()

	if _, err := svc.CreateTemplate(ctx, "test.dup", "one"); err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	if _, err := svc.CreateTemplate(ctx, "test.dup", "two"); err == nil {
		t.Fatalf("duplicate slug accepted")
	}
}

func TestSeedDefaultsNeverOverwrites(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	svc := NewPromptService(log, repos.NewPromptTemplateRepo(db, log))
	ctx := context.Background()

	if err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	all, err := svc.ListTemplates(ctx)
	if err != nil || len(all) == 0 {
		t.Fatalf("ListTemplates: err=%v len=%d", err, len(all))
	}

	var outlineID = all[0].ID
	for _, tpl := range all {
		if tpl.Slug == SlugLessonOutline {
			outlineID = tpl.ID
		}
	}
	edited, err := svc.UpdateTemplate(ctx, outlineID, "admin edited {lesson_title}", nil)
	if err != nil {
		t.Fatalf("UpdateTemplate: %v", err)
	}

	if err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("second SeedDefaults: %v", err)
	}
	after, err := svc.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	if len(after) != len(all) {
		t.Fatalf("reseed changed row count: %d -> %d", len(all), len(after))
	}
	for _, tpl := range after {
		if tpl.ID == edited.ID && tpl.Content != "admin edited {lesson_title}" {
			t.Fatalf("reseed overwrote admin edit: %q", tpl.Content)
		}
	}
}
