package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/utils"
)

// vittsProvider speaks to a viTTS server, a Vietnamese TTS service that
// authenticates with an X-API-Key header. Long texts are processed
// asynchronously: synthesize returns a task id that is polled until the
// audio is ready.
type vittsProvider struct {
	log          *logger.Logger
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
	maxPolls     int
}

func NewViTTSProvider(log *logger.Logger) TTSProvider {
	serviceLog := log.With("service", "ViTTSProvider")
	timeoutSec := utils.GetEnvAsInt("VITTS_TIMEOUT_SECONDS", 120, serviceLog)
	return &vittsProvider{
		log:          serviceLog,
		baseURL:      utils.GetEnv("VITTS_BASE_URL", "http://localhost:8298", serviceLog),
		httpClient:   &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		pollInterval: time.Duration(utils.GetEnvAsInt("VITTS_POLL_INTERVAL_SECONDS", 2, serviceLog)) * time.Second,
		maxPolls:     utils.GetEnvAsInt("VITTS_MAX_POLLS", 60, serviceLog),
	}
}

func (vp *vittsProvider) Name() string {
	return TTSProviderViTTS
}

type vittsSynthesizeRequest struct {
	Text         string  `json:"text"`
	Voice        string  `json:"voice,omitempty"`
	Speed        float64 `json:"speed,omitempty"`
	OutputFormat string  `json:"output_format"`
}

type vittsSynthesizeResponse struct {
	TaskID      string  `json:"task_id"`
	Status      string  `json:"status"`
	AudioBase64 string  `json:"audio_base64"`
	AudioURL    string  `json:"audio_url"`
	Duration    float64 `json:"duration"`
	Error       string  `json:"error"`
}

func (vp *vittsProvider) Synthesize(ctx context.Context, apiKey, voice, text string) (*TTSResult, error) {
	body, err := json.Marshal(vittsSynthesizeRequest{
		Text:         text,
		Voice:        voice,
		OutputFormat: "mp3",
	})
	if err != nil {
		return nil, err
	}

	resp, err := vp.doJSON(ctx, apiKey, http.MethodPost, "/api/v1/tts/synthesize", body)
	if err != nil {
		return nil, err
	}

	// Short texts come back inline; longer ones return a task to poll.
	if resp.AudioBase64 != "" {
		return vp.decodeInline(resp)
	}
	if resp.TaskID == "" {
		return nil, fmt.Errorf("viTTS returned neither audio nor a task id")
	}
	return vp.poll(ctx, apiKey, resp.TaskID)
}

func (vp *vittsProvider) poll(ctx context.Context, apiKey, taskID string) (*TTSResult, error) {
	ticker := time.NewTicker(vp.pollInterval)
	defer ticker.Stop()

	for attempt := 0; attempt < vp.maxPolls; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		resp, err := vp.doJSON(ctx, apiKey, http.MethodGet, "/api/v1/tts/tasks/"+taskID, nil)
		if err != nil {
			return nil, err
		}
		switch resp.Status {
		case "completed":
			if resp.AudioBase64 != "" {
				return vp.decodeInline(resp)
			}
			if resp.AudioURL != "" {
				return vp.download(ctx, apiKey, resp.AudioURL, resp.Duration)
			}
			return nil, fmt.Errorf("viTTS task %s completed without audio", taskID)
		case "failed":
			return nil, fmt.Errorf("viTTS task %s failed: %s", taskID, resp.Error)
		}
	}
	return nil, fmt.Errorf("viTTS task %s did not finish after %d polls", taskID, vp.maxPolls)
}

func (vp *vittsProvider) decodeInline(resp *vittsSynthesizeResponse) (*TTSResult, error) {
	audio, err := base64.StdEncoding.DecodeString(resp.AudioBase64)
	if err != nil {
		return nil, fmt.Errorf("Failed to decode viTTS audio: %w", err)
	}
	return &TTSResult{Audio: audio, Duration: resp.Duration, Format: "mp3"}, nil
}

func (vp *vittsProvider) download(ctx context.Context, apiKey, url string, duration float64) (*TTSResult, error) {
	if len(url) > 0 && url[0] == '/' {
		url = vp.baseURL + url
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Key", apiKey)

	httpResp, err := vp.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viTTS audio download returned %d", httpResp.StatusCode)
	}
	audio, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	return &TTSResult{Audio: audio, Duration: duration, Format: "mp3"}, nil
}

type vittsVoicesResponse struct {
	Voices []struct {
		ID string `json:"id"`
	} `json:"voices"`
}

// Voices returns the server voice list. Voices with a trained_<id> name
// are user-trained reference voices.
func (vp *vittsProvider) Voices(ctx context.Context, apiKey string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, vp.baseURL+"/api/v1/tts/voices", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Key", apiKey)

	httpResp, err := vp.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viTTS voices returned %d: %s", httpResp.StatusCode, string(raw))
	}
	var resp vittsVoicesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("Failed to decode voice list: %w", err)
	}
	out := make([]string, 0, len(resp.Voices))
	for _, v := range resp.Voices {
		out = append(out, v.ID)
	}
	return out, nil
}

func (vp *vittsProvider) doJSON(ctx context.Context, apiKey, method, path string, body []byte) (*vittsSynthesizeResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, vp.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Key", apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := vp.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("viTTS %s returned %d: %s", path, httpResp.StatusCode, string(raw))
	}
	var resp vittsSynthesizeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("Failed to decode viTTS response: %w", err)
	}
	return &resp, nil
}
