package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

type PromptTemplateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, templates []*types.PromptTemplate) ([]*types.PromptTemplate, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.PromptTemplate, error)
	GetActiveBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.PromptTemplate, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.PromptTemplate, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.PromptTemplate, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, updates map[string]interface{}) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) error
}

type promptTemplateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPromptTemplateRepo(db *gorm.DB, baseLog *logger.Logger) PromptTemplateRepo {
	repoLog := baseLog.With("repo", "PromptTemplateRepo")
	return &promptTemplateRepo{db: db, log: repoLog}
}

func (r *promptTemplateRepo) Create(ctx context.Context, tx *gorm.DB, templates []*types.PromptTemplate) ([]*types.PromptTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(templates) == 0 {
		return []*types.PromptTemplate{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *promptTemplateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.PromptTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.PromptTemplate
	if len(templateIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", templateIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetActiveBySlug returns nil when no active template matches.
func (r *promptTemplateRepo) GetActiveBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.PromptTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.PromptTemplate
	if err := transaction.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *promptTemplateRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.PromptTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.PromptTemplate
	if err := transaction.WithContext(ctx).
		Where("slug = ?", slug).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *promptTemplateRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.PromptTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.PromptTemplate
	if err := transaction.WithContext(ctx).
		Order("slug ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *promptTemplateRepo) UpdateFields(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.PromptTemplate{}).
		Where("id = ?", templateID).
		Updates(updates).Error
}

func (r *promptTemplateRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(templateIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", templateIDs).
		Delete(&types.PromptTemplate{}).Error
}
