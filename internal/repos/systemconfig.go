package repos

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

type SystemConfigRepo interface {
	Get(ctx context.Context, tx *gorm.DB, key string) (*types.SystemConfig, error)
	GetByPrefix(ctx context.Context, tx *gorm.DB, prefix string) ([]*types.SystemConfig, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.SystemConfig, error)
	Upsert(ctx context.Context, tx *gorm.DB, key, value string) error
	FullDeleteByKeys(ctx context.Context, tx *gorm.DB, keys []string) error
}

type systemConfigRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSystemConfigRepo(db *gorm.DB, baseLog *logger.Logger) SystemConfigRepo {
	repoLog := baseLog.With("repo", "SystemConfigRepo")
	return &systemConfigRepo{db: db, log: repoLog}
}

func (r *systemConfigRepo) Get(ctx context.Context, tx *gorm.DB, key string) (*types.SystemConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SystemConfig
	if err := transaction.WithContext(ctx).
		Where("key = ?", key).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *systemConfigRepo) GetByPrefix(ctx context.Context, tx *gorm.DB, prefix string) ([]*types.SystemConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SystemConfig
	like := strings.ReplaceAll(strings.ReplaceAll(prefix, "%", `\%`), "_", `\_`) + "%"
	if err := transaction.WithContext(ctx).
		Where("key LIKE ?", like).
		Order("key ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *systemConfigRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.SystemConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SystemConfig
	if err := transaction.WithContext(ctx).
		Order("key ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *systemConfigRepo) Upsert(ctx context.Context, tx *gorm.DB, key, value string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&types.SystemConfig{Key: key, Value: value}).Error
}

func (r *systemConfigRepo) FullDeleteByKeys(ctx context.Context, tx *gorm.DB, keys []string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(keys) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("key IN ?", keys).
		Delete(&types.SystemConfig{}).Error
}
