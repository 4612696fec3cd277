package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/repos"
)

func newLessonFixture(t *testing.T) (LessonService, *gorm.DB, uuid.UUID, uuid.UUID) {
	t.Helper()
	db := testDB(t)
	log := testLogger(t)
	subjectService := NewSubjectService(log, repos.NewSubjectRepo(db, log))
	svc := NewLessonService(log, repos.NewLessonRepo(db, log), subjectService)

	u := seedUser(t, db, "lessons@example.com")
	s := seedSubject(t, db, u.ID)
	return svc, db, u.ID, s.ID
}

func TestGetLessonMissingIsNotFound(t *testing.T) {
	svc, _, userID, _ := newLessonFixture(t)

	_, err := svc.GetLesson(context.Background(), userID, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing lesson: err = %v, want ErrNotFound", err)
	}
}

func TestGetLessonHidesOtherUsersRows(t *testing.T) {
	svc, db, userID, subjectID := newLessonFixture(t)
	ctx := context.Background()

	lesson := seedLesson(t, db, subjectID, userID)
	stranger := seedUser(t, db, "stranger@example.com")

	if _, err := svc.GetLesson(ctx, userID, lesson.ID); err != nil {
		t.Fatalf("owner GetLesson: %v", err)
	}
	_, err := svc.GetLesson(ctx, stranger.ID, lesson.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("stranger GetLesson: err = %v, want ErrNotFound", err)
	}
}
