package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/repos"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

// SystemConfigService exposes admin-tunable runtime settings stored in the
// system_config table, such as the active TTS provider or default model
// names. Values are read fresh on every call.
type SystemConfigService interface {
	Get(ctx context.Context, key, fallback string) string
	GetBool(ctx context.Context, key string, fallback bool) bool
	GetGroup(ctx context.Context, prefix string) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context) ([]*types.SystemConfig, error)
	Delete(ctx context.Context, keys []string) error
}

type systemConfigService struct {
	log        *logger.Logger
	configRepo repos.SystemConfigRepo
}

func NewSystemConfigService(log *logger.Logger, configRepo repos.SystemConfigRepo) SystemConfigService {
	return &systemConfigService{
		log:        log.With("service", "SystemConfigService"),
		configRepo: configRepo,
	}
}

func (scs *systemConfigService) Get(ctx context.Context, key, fallback string) string {
	entry, err := scs.configRepo.Get(ctx, nil, key)
	if err != nil {
		scs.log.Warn("Failed to read system config", "key", key, "error", err)
		return fallback
	}
	if entry == nil || strings.TrimSpace(entry.Value) == "" {
		return fallback
	}
	return entry.Value
}

func (scs *systemConfigService) GetBool(ctx context.Context, key string, fallback bool) bool {
	raw := scs.Get(ctx, key, "")
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		scs.log.Warn("Invalid boolean in system config", "key", key, "value", raw)
		return fallback
	}
	return parsed
}

func (scs *systemConfigService) GetGroup(ctx context.Context, prefix string) (map[string]string, error) {
	entries, err := scs.configRepo.GetByPrefix(ctx, nil, prefix)
	if err != nil {
		return nil, fmt.Errorf("Failed to read config group %q: %w", prefix, err)
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Value
	}
	return out, nil
}

func (scs *systemConfigService) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("Config key must not be empty")
	}
	if err := scs.configRepo.Upsert(ctx, nil, &types.SystemConfig{Key: key, Value: value}); err != nil {
		return fmt.Errorf("Failed to upsert config %q: %w", key, err)
	}
	return nil
}

func (scs *systemConfigService) List(ctx context.Context) ([]*types.SystemConfig, error) {
	return scs.configRepo.List(ctx, nil)
}

func (scs *systemConfigService) Delete(ctx context.Context, keys []string) error {
	return scs.configRepo.FullDeleteByKeys(ctx, nil, keys)
}
