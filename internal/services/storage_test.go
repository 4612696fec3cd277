package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newStorageFixture(t *testing.T) StorageService {
	t.Helper()
	t.Setenv("DATA_ROOT", t.TempDir())
	svc, err := NewStorageService(testLogger(t))
	if err != nil {
		t.Fatalf("NewStorageService: %v", err)
	}
	return svc
}

func TestStorageSaveReadDelete(t *testing.T) {
	svc := newStorageFixture(t)
	ctx := context.Background()

	url, err := svc.Save(ctx, "audio/lesson1/slide_0.mp3", []byte("audio-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "/files/audio/lesson1/slide_0.mp3" {
		t.Fatalf("public url = %q", url)
	}

	data, err := svc.Read(ctx, "audio/lesson1/slide_0.mp3")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Fatalf("Read = %q", data)
	}

	if err := svc.Delete(ctx, "audio/lesson1/slide_0.mp3"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Read(ctx, "audio/lesson1/slide_0.mp3"); err == nil {
		t.Fatalf("Read after Delete succeeded")
	}
	// Deleting a missing key is not an error.
	if err := svc.Delete(ctx, "audio/lesson1/slide_0.mp3"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestStorageResolveRejectsEscapes(t *testing.T) {
	svc := newStorageFixture(t)

	bad := []string{
		"",
		"/",
		"..",
		"../etc/passwd",
		"a/../../b",
		"a//b",
		"a/./b",
		`a\b`,
		"images/../../../../tmp/x",
		"a..b/file.mp3",
		"audio/..hidden/x",
	}
	for _, key := range bad {
		if _, err := svc.Resolve(key); err == nil {
			t.Fatalf("Resolve(%q) accepted", key)
		}
	}

	abs, err := svc.Resolve("images/lesson1/slide_2.webp")
	if err != nil {
		t.Fatalf("Resolve valid key: %v", err)
	}
	want := filepath.Join(svc.Root(), "images", "lesson1", "slide_2.webp")
	if abs != want {
		t.Fatalf("Resolve = %q, want %q", abs, want)
	}
}

func TestStorageSaveCreatesNestedDirs(t *testing.T) {
	svc := newStorageFixture(t)

	if _, err := svc.Save(context.Background(), "exports/deep/nested/deck.pptx", []byte("zip")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(svc.Root(), "exports", "deep", "nested", "deck.pptx")); err != nil {
		t.Fatalf("file missing on disk: %v", err)
	}
}
