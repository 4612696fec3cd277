package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

const (
	TTSProviderViTTS  = "vitts"
	TTSProviderOpenAI = "openai"

	configKeyTTSProvider = "tts.provider"
	configKeyTTSVoice    = "tts.default_voice"
)

type TTSResult struct {
	Audio    []byte
	Duration float64
	Format   string
}

// TTSProvider synthesizes narration audio for a slide's speaker note.
type TTSProvider interface {
	Name() string
	Synthesize(ctx context.Context, apiKey, voice, text string) (*TTSResult, error)
	Voices(ctx context.Context, apiKey string) ([]string, error)
}

// TTSService picks the active provider from system config on every call,
// so an admin can switch providers without a restart.
type TTSService interface {
	SynthesizeForUser(ctx context.Context, userID uuid.UUID, voice, text string) (*TTSResult, error)
	ListVoices(ctx context.Context, userID uuid.UUID) ([]string, error)
	ActiveProvider(ctx context.Context) string
}

type ttsService struct {
	log           *logger.Logger
	configService SystemConfigService
	apiKeyService ApiKeyService
	providers     map[string]TTSProvider
}

func NewTTSService(
	log *logger.Logger,
	configService SystemConfigService,
	apiKeyService ApiKeyService,
	providers ...TTSProvider,
) TTSService {
	byName := make(map[string]TTSProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &ttsService{
		log:           log.With("service", "TTSService"),
		configService: configService,
		apiKeyService: apiKeyService,
		providers:     byName,
	}
}

func (ts *ttsService) ActiveProvider(ctx context.Context) string {
	return ts.configService.Get(ctx, configKeyTTSProvider, TTSProviderViTTS)
}

func (ts *ttsService) resolve(ctx context.Context, userID uuid.UUID) (TTSProvider, string, error) {
	name := ts.ActiveProvider(ctx)
	provider, ok := ts.providers[name]
	if !ok {
		return nil, "", fmt.Errorf("Unknown TTS provider %q", name)
	}
	apiKey, err := ts.apiKeyService.ResolveKey(ctx, userID, types.ApiKeyServiceTTS)
	if err != nil {
		return nil, "", fmt.Errorf("Failed to resolve TTS key: %w", err)
	}
	return provider, apiKey, nil
}

func (ts *ttsService) SynthesizeForUser(ctx context.Context, userID uuid.UUID, voice, text string) (*TTSResult, error) {
	if text == "" {
		return nil, fmt.Errorf("Cannot synthesize empty text")
	}
	provider, apiKey, err := ts.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if voice == "" {
		voice = ts.configService.Get(ctx, configKeyTTSVoice, "")
	}
	result, err := provider.Synthesize(ctx, apiKey, voice, text)
	if err != nil {
		return nil, fmt.Errorf("TTS synthesis via %s failed: %w", provider.Name(), err)
	}
	return result, nil
}

func (ts *ttsService) ListVoices(ctx context.Context, userID uuid.UUID) ([]string, error) {
	provider, apiKey, err := ts.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	return provider.Voices(ctx, apiKey)
}
