package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/repos"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

func newQuestionFixture(t *testing.T) (QuestionService, *gorm.DB, uuid.UUID, uuid.UUID) {
	t.Helper()
	db := testDB(t)
	log := testLogger(t)
	subjectService := NewSubjectService(log, repos.NewSubjectRepo(db, log))
	lessonService := NewLessonService(log, repos.NewLessonRepo(db, log), subjectService)
	svc := NewQuestionService(db, log, repos.NewQuestionRepo(db, log), lessonService)

	u := seedUser(t, db, "questions@example.com")
	s := seedSubject(t, db, u.ID)
	l := seedLesson(t, db, s.ID, u.ID)
	return svc, db, u.ID, l.ID
}

func bankOf(contents ...string) []*types.Question {
	questions := make([]*types.Question, 0, len(contents))
	for _, content := range contents {
		questions = append(questions, &types.Question{
			Type:    types.QuestionTypeShortAnswer,
			Content: content,
			Answer:  "because",
		})
	}
	return questions
}

func TestReplaceForLessonSwapsBank(t *testing.T) {
	svc, _, userID, lessonID := newQuestionFixture(t)
	ctx := context.Background()

	if _, err := svc.ReplaceForLesson(ctx, lessonID, bankOf("old one", "old two")); err != nil {
		t.Fatalf("first ReplaceForLesson: %v", err)
	}
	created, err := svc.ReplaceForLesson(ctx, lessonID, bankOf("new one", "new two", "new three"))
	if err != nil {
		t.Fatalf("second ReplaceForLesson: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("created = %d questions", len(created))
	}

	listed, err := svc.ListByLesson(ctx, userID, lessonID)
	if err != nil {
		t.Fatalf("ListByLesson: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("listed = %d questions, want 3", len(listed))
	}
	for _, q := range listed {
		if q.Content == "old one" || q.Content == "old two" {
			t.Fatalf("old question %q survived the swap", q.Content)
		}
	}
}

// A failed insert must leave the previous bank in place rather than an
// empty one.
func TestReplaceForLessonKeepsOldBankOnFailedInsert(t *testing.T) {
	svc, _, userID, lessonID := newQuestionFixture(t)
	ctx := context.Background()

	if _, err := svc.ReplaceForLesson(ctx, lessonID, bankOf("old one", "old two")); err != nil {
		t.Fatalf("seed ReplaceForLesson: %v", err)
	}

	dupID := uuid.New()
	colliding := bankOf("new one", "new two")
	colliding[0].ID = dupID
	colliding[1].ID = dupID
	if _, err := svc.ReplaceForLesson(ctx, lessonID, colliding); err == nil {
		t.Fatalf("colliding insert succeeded")
	}

	listed, err := svc.ListByLesson(ctx, userID, lessonID)
	if err != nil {
		t.Fatalf("ListByLesson: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed = %d questions after failed replace, want 2", len(listed))
	}
	for _, q := range listed {
		if q.Content != "old one" && q.Content != "old two" {
			t.Fatalf("unexpected question %q after rollback", q.Content)
		}
	}
}

func TestUpdateQuestionScopedToOwner(t *testing.T) {
	svc, db, _, lessonID := newQuestionFixture(t)
	ctx := context.Background()

	created, err := svc.ReplaceForLesson(ctx, lessonID, bankOf("what is a mutex"))
	if err != nil {
		t.Fatalf("ReplaceForLesson: %v", err)
	}
	stranger := seedUser(t, db, "stranger@example.com")

	if _, err := svc.UpdateQuestion(ctx, stranger.ID, created[0].ID, map[string]interface{}{
		"content": "hijacked",
	}); err == nil {
		t.Fatalf("stranger updated another user's question")
	}
}
