package services

import (
	"context"
	"strings"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
)

// openaiTTSProvider adapts the shared AI client's speech endpoint to the
// TTSProvider interface.
type openaiTTSProvider struct {
	log    *logger.Logger
	client AIClient
}

func NewOpenAITTSProvider(log *logger.Logger, client AIClient) TTSProvider {
	return &openaiTTSProvider{
		log:    log.With("service", "OpenAITTSProvider"),
		client: client,
	}
}

func (op *openaiTTSProvider) Name() string {
	return TTSProviderOpenAI
}

func (op *openaiTTSProvider) Synthesize(ctx context.Context, apiKey, voice, text string) (*TTSResult, error) {
	audio, err := op.client.Speech(ctx, apiKey, voice, text)
	if err != nil {
		return nil, err
	}
	return &TTSResult{
		Audio:    audio,
		Duration: estimateSpeechDuration(text),
		Format:   "mp3",
	}, nil
}

// The speech endpoint does not report duration, so it is estimated from
// word count at a typical lecture pace of 150 words per minute.
func estimateSpeechDuration(text string) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return float64(words) / 150.0 * 60.0
}

func (op *openaiTTSProvider) Voices(ctx context.Context, apiKey string) ([]string, error) {
	return []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}, nil
}
