package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

type SlideRepo interface {
	Create(ctx context.Context, tx *gorm.DB, slides []*types.Slide) ([]*types.Slide, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, slideIDs []uuid.UUID) ([]*types.Slide, error)
	GetByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.Slide, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, slideID uuid.UUID, updates map[string]interface{}) error
	DeleteByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) error
}

type slideRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSlideRepo(db *gorm.DB, baseLog *logger.Logger) SlideRepo {
	repoLog := baseLog.With("repo", "SlideRepo")
	return &slideRepo{db: db, log: repoLog}
}

func (r *slideRepo) Create(ctx context.Context, tx *gorm.DB, slides []*types.Slide) ([]*types.Slide, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(slides) == 0 {
		return []*types.Slide{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&slides).Error; err != nil {
		return nil, err
	}
	return slides, nil
}

func (r *slideRepo) GetByIDs(ctx context.Context, tx *gorm.DB, slideIDs []uuid.UUID) ([]*types.Slide, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Slide
	if len(slideIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", slideIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *slideRepo) GetByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.Slide, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Slide
	if len(lessonIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("lesson_id IN ?", lessonIDs).
		Order("slide_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *slideRepo) UpdateFields(ctx context.Context, tx *gorm.DB, slideID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Slide{}).
		Where("id = ?", slideID).
		Updates(updates).Error
}

func (r *slideRepo) DeleteByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(lessonIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("lesson_id IN ?", lessonIDs).
		Delete(&types.Slide{}).Error
}
