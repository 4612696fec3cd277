package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/repos"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

type LessonService interface {
	CreateLesson(ctx context.Context, lesson *types.Lesson) (*types.Lesson, error)
	GetLesson(ctx context.Context, userID, lessonID uuid.UUID) (*types.Lesson, error)
	ListLessons(ctx context.Context, userID, subjectID uuid.UUID) ([]*types.Lesson, error)
	UpdateLesson(ctx context.Context, userID, lessonID uuid.UUID, fields map[string]interface{}) (*types.Lesson, error)
	DeleteLesson(ctx context.Context, userID, lessonID uuid.UUID) error
}

type lessonService struct {
	log            *logger.Logger
	lessonRepo     repos.LessonRepo
	subjectService SubjectService
}

func NewLessonService(log *logger.Logger, lessonRepo repos.LessonRepo, subjectService SubjectService) LessonService {
	return &lessonService{
		log:            log.With("service", "LessonService"),
		lessonRepo:     lessonRepo,
		subjectService: subjectService,
	}
}

func (ls *lessonService) CreateLesson(ctx context.Context, lesson *types.Lesson) (*types.Lesson, error) {
	lesson.Title = strings.TrimSpace(lesson.Title)
	if lesson.Title == "" {
		return nil, fmt.Errorf("Lesson title must not be empty")
	}
	if _, err := ls.subjectService.GetSubject(ctx, lesson.UserID, lesson.SubjectID); err != nil {
		return nil, err
	}
	if lesson.Status == "" {
		lesson.Status = types.LessonStatusDraft
	}
	created, err := ls.lessonRepo.Create(ctx, nil, []*types.Lesson{lesson})
	if err != nil {
		return nil, fmt.Errorf("Failed to create lesson: %w", err)
	}
	return created[0], nil
}

func (ls *lessonService) GetLesson(ctx context.Context, userID, lessonID uuid.UUID) (*types.Lesson, error) {
	found, err := ls.lessonRepo.GetByIDs(ctx, nil, []uuid.UUID{lessonID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load lesson: %w", err)
	}
	if len(found) == 0 || found[0].UserID != userID {
		return nil, fmt.Errorf("Lesson %s %w", lessonID, ErrNotFound)
	}
	return found[0], nil
}

func (ls *lessonService) ListLessons(ctx context.Context, userID, subjectID uuid.UUID) ([]*types.Lesson, error) {
	if _, err := ls.subjectService.GetSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	return ls.lessonRepo.ListBySubjectIDs(ctx, nil, []uuid.UUID{subjectID})
}

func (ls *lessonService) UpdateLesson(ctx context.Context, userID, lessonID uuid.UUID, fields map[string]interface{}) (*types.Lesson, error) {
	if _, err := ls.GetLesson(ctx, userID, lessonID); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := ls.lessonRepo.UpdateFields(ctx, nil, lessonID, fields); err != nil {
			return nil, fmt.Errorf("Failed to update lesson: %w", err)
		}
	}
	return ls.GetLesson(ctx, userID, lessonID)
}

func (ls *lessonService) DeleteLesson(ctx context.Context, userID, lessonID uuid.UUID) error {
	if _, err := ls.GetLesson(ctx, userID, lessonID); err != nil {
		return err
	}
	return ls.lessonRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{lessonID})
}
