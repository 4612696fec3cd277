package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

type ApiKeyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, keys []*types.ApiKey) ([]*types.ApiKey, error)
	GetUserKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, service types.ApiKeyService) (*types.ApiKey, error)
	GetSystemKey(ctx context.Context, tx *gorm.DB, service types.ApiKeyService) (*types.ApiKey, error)
	ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.ApiKey, error)
	ListSystem(ctx context.Context, tx *gorm.DB) ([]*types.ApiKey, error)
	FullDeleteUserKey(ctx context.Context, tx *gorm.DB, userID, keyID uuid.UUID) (int64, error)
	FullDeleteSystemKey(ctx context.Context, tx *gorm.DB, keyID uuid.UUID) (int64, error)
}

type apiKeyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewApiKeyRepo(db *gorm.DB, baseLog *logger.Logger) ApiKeyRepo {
	repoLog := baseLog.With("repo", "ApiKeyRepo")
	return &apiKeyRepo{db: db, log: repoLog}
}

func (r *apiKeyRepo) Create(ctx context.Context, tx *gorm.DB, keys []*types.ApiKey) ([]*types.ApiKey, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(keys) == 0 {
		return []*types.ApiKey{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *apiKeyRepo) GetUserKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, service types.ApiKeyService) (*types.ApiKey, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ApiKey
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND service = ? AND is_system = ?", userID, service, false).
		Order("updated_at DESC").
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *apiKeyRepo) GetSystemKey(ctx context.Context, tx *gorm.DB, service types.ApiKeyService) (*types.ApiKey, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ApiKey
	if err := transaction.WithContext(ctx).
		Where("service = ? AND is_system = ?", service, true).
		Order("updated_at DESC").
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *apiKeyRepo) ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.ApiKey, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ApiKey
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id IN ? AND is_system = ?", userIDs, false).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *apiKeyRepo) ListSystem(ctx context.Context, tx *gorm.DB) ([]*types.ApiKey, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ApiKey
	if err := transaction.WithContext(ctx).
		Where("is_system = ?", true).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FullDeleteUserKey removes a key only when it belongs to the given user.
// System keys and other users' keys never match the filter.
func (r *apiKeyRepo) FullDeleteUserKey(ctx context.Context, tx *gorm.DB, userID, keyID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_system = ?", keyID, userID, false).
		Delete(&types.ApiKey{})
	return res.RowsAffected, res.Error
}

func (r *apiKeyRepo) FullDeleteSystemKey(ctx context.Context, tx *gorm.DB, keyID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ? AND is_system = ?", keyID, true).
		Delete(&types.ApiKey{})
	return res.RowsAffected, res.Error
}
