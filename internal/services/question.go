package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/repos"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

type QuestionService interface {
	ListByLesson(ctx context.Context, userID, lessonID uuid.UUID) ([]*types.Question, error)
	UpdateQuestion(ctx context.Context, userID, questionID uuid.UUID, fields map[string]interface{}) (*types.Question, error)
	DeleteQuestion(ctx context.Context, userID, questionID uuid.UUID) error
	ReplaceForLesson(ctx context.Context, lessonID uuid.UUID, questions []*types.Question) ([]*types.Question, error)
}

type questionService struct {
	db            *gorm.DB
	log           *logger.Logger
	questionRepo  repos.QuestionRepo
	lessonService LessonService
}

func NewQuestionService(db *gorm.DB, log *logger.Logger, questionRepo repos.QuestionRepo, lessonService LessonService) QuestionService {
	return &questionService{
		db:            db,
		log:           log.With("service", "QuestionService"),
		questionRepo:  questionRepo,
		lessonService: lessonService,
	}
}

func (qs *questionService) ListByLesson(ctx context.Context, userID, lessonID uuid.UUID) ([]*types.Question, error) {
	if _, err := qs.lessonService.GetLesson(ctx, userID, lessonID); err != nil {
		return nil, err
	}
	return qs.questionRepo.GetByLessonIDs(ctx, nil, []uuid.UUID{lessonID})
}

func (qs *questionService) getOwned(ctx context.Context, userID, questionID uuid.UUID) (*types.Question, error) {
	found, err := qs.questionRepo.GetByIDs(ctx, nil, []uuid.UUID{questionID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load question: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("Question %s %w", questionID, ErrNotFound)
	}
	if _, err := qs.lessonService.GetLesson(ctx, userID, found[0].LessonID); err != nil {
		return nil, fmt.Errorf("Question %s %w", questionID, ErrNotFound)
	}
	return found[0], nil
}

func (qs *questionService) UpdateQuestion(ctx context.Context, userID, questionID uuid.UUID, fields map[string]interface{}) (*types.Question, error) {
	if _, err := qs.getOwned(ctx, userID, questionID); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := qs.questionRepo.UpdateFields(ctx, nil, questionID, fields); err != nil {
			return nil, fmt.Errorf("Failed to update question: %w", err)
		}
	}
	return qs.getOwned(ctx, userID, questionID)
}

func (qs *questionService) DeleteQuestion(ctx context.Context, userID, questionID uuid.UUID) error {
	if _, err := qs.getOwned(ctx, userID, questionID); err != nil {
		return err
	}
	return qs.questionRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{questionID})
}

// ReplaceForLesson swaps the lesson's question bank for a freshly
// generated one in a single transaction, so a failed insert keeps the old
// bank. Ownership is the caller's responsibility; the generation flow has
// already checked it.
func (qs *questionService) ReplaceForLesson(ctx context.Context, lessonID uuid.UUID, questions []*types.Question) ([]*types.Question, error) {
	var created []*types.Question
	txErr := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := qs.questionRepo.SoftDeleteByLessonIDs(ctx, tx, []uuid.UUID{lessonID}); err != nil {
			return fmt.Errorf("Failed to clear old questions: %w", err)
		}
		for _, q := range questions {
			q.LessonID = lessonID
		}
		var cErr error
		created, cErr = qs.questionRepo.Create(ctx, tx, questions)
		if cErr != nil {
			return fmt.Errorf("Failed to create questions: %w", cErr)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}
