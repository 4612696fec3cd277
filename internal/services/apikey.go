package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/repos"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/secrets"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

// Environment fallbacks per external service, used when neither the user
// nor the admin has stored a key.
var envKeyNames = map[types.ApiKeyService]string{
	types.ApiKeyServiceLLM:   "OPENAI_API_KEY",
	types.ApiKeyServiceTTS:   "TTS_API_KEY",
	types.ApiKeyServiceImage: "IMAGE_API_KEY",
}

// ApiKeyService resolves credentials for outbound AI calls. Resolution
// order is user key, then system key, then environment. Keys are decrypted
// at resolve time and never cached.
type ApiKeyService interface {
	ResolveKey(ctx context.Context, userID uuid.UUID, service types.ApiKeyService) (string, error)
	SetUserKey(ctx context.Context, userID uuid.UUID, service types.ApiKeyService, value, label string) (*types.ApiKey, error)
	SetSystemKey(ctx context.Context, service types.ApiKeyService, value, label string) (*types.ApiKey, error)
	ListUserKeys(ctx context.Context, userID uuid.UUID) ([]*types.ApiKey, error)
	ListSystemKeys(ctx context.Context) ([]*types.ApiKey, error)
	DeleteUserKey(ctx context.Context, userID, keyID uuid.UUID) error
	DeleteSystemKey(ctx context.Context, keyID uuid.UUID) error
}

type apiKeyService struct {
	log        *logger.Logger
	apiKeyRepo repos.ApiKeyRepo
	box        *secrets.Box
}

func NewApiKeyService(log *logger.Logger, apiKeyRepo repos.ApiKeyRepo, box *secrets.Box) ApiKeyService {
	return &apiKeyService{
		log:        log.With("service", "ApiKeyService"),
		apiKeyRepo: apiKeyRepo,
		box:        box,
	}
}

func (aks *apiKeyService) ResolveKey(ctx context.Context, userID uuid.UUID, service types.ApiKeyService) (string, error) {
	if userID != uuid.Nil {
		userKey, err := aks.apiKeyRepo.GetUserKey(ctx, nil, userID, service)
		if err != nil {
			return "", fmt.Errorf("Failed to look up user key: %w", err)
		}
		if userKey != nil {
			return aks.box.Decrypt(userKey.EncryptedValue)
		}
	}

	systemKey, err := aks.apiKeyRepo.GetSystemKey(ctx, nil, service)
	if err != nil {
		return "", fmt.Errorf("Failed to look up system key: %w", err)
	}
	if systemKey != nil {
		return aks.box.Decrypt(systemKey.EncryptedValue)
	}

	if envName, ok := envKeyNames[service]; ok {
		if v := strings.TrimSpace(os.Getenv(envName)); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("No API key configured for service %q", service)
}

func (aks *apiKeyService) SetUserKey(ctx context.Context, userID uuid.UUID, service types.ApiKeyService, value, label string) (*types.ApiKey, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("User ID required")
	}
	return aks.storeKey(ctx, &userID, false, service, value, label)
}

func (aks *apiKeyService) SetSystemKey(ctx context.Context, service types.ApiKeyService, value, label string) (*types.ApiKey, error) {
	return aks.storeKey(ctx, nil, true, service, value, label)
}

func (aks *apiKeyService) storeKey(ctx context.Context, userID *uuid.UUID, isSystem bool, service types.ApiKeyService, value, label string) (*types.ApiKey, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("API key value must not be empty")
	}
	switch service {
	case types.ApiKeyServiceLLM, types.ApiKeyServiceTTS, types.ApiKeyServiceImage:
	default:
		return nil, fmt.Errorf("Unknown API key service %q", service)
	}
	encrypted, err := aks.box.Encrypt(value)
	if err != nil {
		return nil, fmt.Errorf("Failed to encrypt API key: %w", err)
	}
	key := &types.ApiKey{
		UserID:         userID,
		IsSystem:       isSystem,
		Service:        service,
		EncryptedValue: encrypted,
		Label:          label,
	}
	created, err := aks.apiKeyRepo.Create(ctx, nil, []*types.ApiKey{key})
	if err != nil {
		return nil, fmt.Errorf("Failed to store API key: %w", err)
	}
	return created[0], nil
}

func (aks *apiKeyService) ListUserKeys(ctx context.Context, userID uuid.UUID) ([]*types.ApiKey, error) {
	return aks.apiKeyRepo.ListByUserIDs(ctx, nil, []uuid.UUID{userID})
}

func (aks *apiKeyService) ListSystemKeys(ctx context.Context) ([]*types.ApiKey, error) {
	return aks.apiKeyRepo.ListSystem(ctx, nil)
}

// DeleteUserKey removes one of the caller's own keys. A key id that is
// not theirs, or that belongs to the system, reads as not found.
func (aks *apiKeyService) DeleteUserKey(ctx context.Context, userID, keyID uuid.UUID) error {
	rows, err := aks.apiKeyRepo.FullDeleteUserKey(ctx, nil, userID, keyID)
	if err != nil {
		return fmt.Errorf("Failed to delete API key: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("API key %s %w", keyID, ErrNotFound)
	}
	return nil
}

func (aks *apiKeyService) DeleteSystemKey(ctx context.Context, keyID uuid.UUID) error {
	rows, err := aks.apiKeyRepo.FullDeleteSystemKey(ctx, nil, keyID)
	if err != nil {
		return fmt.Errorf("Failed to delete API key: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("API key %s %w", keyID, ErrNotFound)
	}
	return nil
}
