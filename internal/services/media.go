package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/imageconv"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/sse"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/utils"
)

// BulkResult tallies a sequential bulk run. Failed items are marked on
// the slide rows and the run continues past them.
type BulkResult struct {
	Total  int         `json:"total"`
	OK     int         `json:"ok"`
	Failed int         `json:"failed"`
	Errors []BulkError `json:"errors,omitempty"`
}

type BulkError struct {
	SlideIndex int    `json:"slide_index"`
	Message    string `json:"message"`
}

// MediaService produces narration audio and illustrations for slides.
type MediaService interface {
	GenerateSlideAudio(ctx context.Context, userID, slideID uuid.UUID) (*types.Slide, error)
	GenerateSlideImage(ctx context.Context, userID, slideID uuid.UUID) (*types.Slide, error)
	GenerateAllAudio(ctx context.Context, userID, lessonID uuid.UUID, voice string) (*BulkResult, error)
	GenerateAllImages(ctx context.Context, userID, lessonID uuid.UUID) (*BulkResult, error)
}

type mediaService struct {
	log               *logger.Logger
	aiClient          AIClient
	apiKeyService     ApiKeyService
	promptService     PromptService
	ttsService        TTSService
	storageService    StorageService
	slideService      SlideService
	lessonService     LessonService
	subjectService    SubjectService
	hub               *sse.SSEHub
	bulkDelay         time.Duration
	imageOutputFormat string
}

func NewMediaService(
	log *logger.Logger,
	aiClient AIClient,
	apiKeyService ApiKeyService,
	promptService PromptService,
	ttsService TTSService,
	storageService StorageService,
	slideService SlideService,
	lessonService LessonService,
	subjectService SubjectService,
	hub *sse.SSEHub,
) MediaService {
	serviceLog := log.With("service", "MediaService")
	return &mediaService{
		log:               serviceLog,
		aiClient:          aiClient,
		apiKeyService:     apiKeyService,
		promptService:     promptService,
		ttsService:        ttsService,
		storageService:    storageService,
		slideService:      slideService,
		lessonService:     lessonService,
		subjectService:    subjectService,
		hub:               hub,
		bulkDelay:         time.Duration(utils.GetEnvAsInt("BULK_GENERATION_DELAY_MS", 500, serviceLog)) * time.Millisecond,
		imageOutputFormat: utils.GetEnv("SLIDE_IMAGE_FORMAT", "webp", serviceLog),
	}
}

// narrationText prefers the optimized speaker note when one exists.
func narrationText(slide *types.Slide) string {
	if len(slide.OptimizedContentJSON) > 0 {
		var opt struct {
			SpeakerNote string `json:"speakerNote"`
		}
		if json.Unmarshal(slide.OptimizedContentJSON, &opt) == nil && strings.TrimSpace(opt.SpeakerNote) != "" {
			return opt.SpeakerNote
		}
	}
	return slide.SpeakerNote
}

func (ms *mediaService) GenerateSlideAudio(ctx context.Context, userID, slideID uuid.UUID) (*types.Slide, error) {
	return ms.generateSlideAudio(ctx, userID, slideID, "")
}

func (ms *mediaService) generateSlideAudio(ctx context.Context, userID, slideID uuid.UUID, voice string) (*types.Slide, error) {
	slide, err := ms.slideService.GetByID(ctx, slideID)
	if err != nil {
		return nil, err
	}
	if _, err := ms.lessonService.GetLesson(ctx, userID, slide.LessonID); err != nil {
		return nil, err
	}
	text := narrationText(slide)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("Slide %d has no speaker note to narrate", slide.SlideIndex)
	}

	if _, err := ms.slideService.UpdateSlide(ctx, slideID, map[string]interface{}{
		"status": types.SlideStatusGeneratingAudio,
	}); err != nil {
		return nil, err
	}

	result, synthErr := ms.ttsService.SynthesizeForUser(ctx, userID, voice, text)
	if synthErr != nil {
		ms.markFailure(ctx, slide, types.SlideStatusAudioError, sse.SSEEventSlideAudioError, synthErr)
		return nil, synthErr
	}

	key := fmt.Sprintf("%s/%s/audio/slide_%d.%s", userID, slide.LessonID, slide.SlideIndex, result.Format)
	url, saveErr := ms.storageService.Save(ctx, key, result.Audio)
	if saveErr != nil {
		ms.markFailure(ctx, slide, types.SlideStatusAudioError, sse.SSEEventSlideAudioError, saveErr)
		return nil, saveErr
	}

	updated, err := ms.slideService.UpdateSlide(ctx, slideID, map[string]interface{}{
		"audio_url":      url,
		"audio_duration": result.Duration,
		"status":         types.SlideStatusAudioReady,
	})
	if err != nil {
		return nil, err
	}
	ms.hub.Broadcast(sse.SSEMessage{
		Channel: sse.LessonChannel(slide.LessonID),
		Event:   sse.SSEEventSlideAudioReady,
		Data:    map[string]any{"slide_id": slideID, "slide_index": slide.SlideIndex, "audio_url": url},
	})
	return updated, nil
}

func (ms *mediaService) GenerateSlideImage(ctx context.Context, userID, slideID uuid.UUID) (*types.Slide, error) {
	slide, err := ms.slideService.GetByID(ctx, slideID)
	if err != nil {
		return nil, err
	}
	lesson, err := ms.lessonService.GetLesson(ctx, userID, slide.LessonID)
	if err != nil {
		return nil, err
	}

	imagePrompt := strings.TrimSpace(slide.ImagePrompt)
	if imagePrompt == "" {
		imagePrompt, err = ms.composeImagePrompt(ctx, userID, lesson, slide)
		if err != nil {
			ms.markFailure(ctx, slide, types.SlideStatusImageError, sse.SSEEventSlideImageError, err)
			return nil, err
		}
	}

	imageKey, err := ms.apiKeyService.ResolveKey(ctx, userID, types.ApiKeyServiceImage)
	if err != nil {
		return nil, err
	}
	raw, genErr := ms.aiClient.GenerateImage(ctx, imageKey, imagePrompt)
	if genErr != nil {
		ms.markFailure(ctx, slide, types.SlideStatusImageError, sse.SSEEventSlideImageError, genErr)
		return nil, genErr
	}

	data, ext, convErr := ms.convertImage(raw)
	if convErr != nil {
		ms.markFailure(ctx, slide, types.SlideStatusImageError, sse.SSEEventSlideImageError, convErr)
		return nil, convErr
	}

	key := fmt.Sprintf("%s/%s/images/slide_%d.%s", userID, slide.LessonID, slide.SlideIndex, ext)
	url, saveErr := ms.storageService.Save(ctx, key, data)
	if saveErr != nil {
		ms.markFailure(ctx, slide, types.SlideStatusImageError, sse.SSEEventSlideImageError, saveErr)
		return nil, saveErr
	}

	updated, err := ms.slideService.UpdateSlide(ctx, slideID, map[string]interface{}{
		"image_prompt": imagePrompt,
		"image_url":    url,
		"status":       types.SlideStatusImageGenerated,
	})
	if err != nil {
		return nil, err
	}
	ms.hub.Broadcast(sse.SSEMessage{
		Channel: sse.LessonChannel(slide.LessonID),
		Event:   sse.SSEEventSlideImageReady,
		Data:    map[string]any{"slide_id": slideID, "slide_index": slide.SlideIndex, "image_url": url},
	})
	return updated, nil
}

func (ms *mediaService) composeImagePrompt(ctx context.Context, userID uuid.UUID, lesson *types.Lesson, slide *types.Slide) (string, error) {
	subject, err := ms.subjectService.GetSubject(ctx, userID, lesson.SubjectID)
	if err != nil {
		return "", err
	}
	vars := PromptVars(subject)
	vars["lesson_title"] = lesson.Title
	vars["title"] = slide.Title
	vars["visual_idea"] = slide.VisualIdea
	vars["content"] = slide.Content

	prompt, err := ms.promptService.BuildFullPrompt(ctx, SlugSlideImagePrompt, vars)
	if err != nil {
		return "", err
	}
	llmKey, err := ms.apiKeyService.ResolveKey(ctx, userID, types.ApiKeyServiceLLM)
	if err != nil {
		return "", err
	}
	reply, err := ms.aiClient.Chat(ctx, llmKey, "", prompt)
	if err != nil {
		return "", fmt.Errorf("Image prompt composition failed: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

func (ms *mediaService) convertImage(raw []byte) ([]byte, string, error) {
	switch ms.imageOutputFormat {
	case "webp":
		data, err := imageconv.ToWEBP(raw)
		return data, "webp", err
	case "jpg", "jpeg":
		data, err := imageconv.ToJPG(raw)
		return data, "jpg", err
	default:
		data, err := imageconv.ToPNG(raw)
		return data, "png", err
	}
}

func (ms *mediaService) markFailure(ctx context.Context, slide *types.Slide, status string, event sse.SSEEvent, cause error) {
	ms.log.Warn("Slide media generation failed",
		"slideID", slide.ID, "slideIndex", slide.SlideIndex, "status", status, "error", cause)
	if _, err := ms.slideService.UpdateSlide(ctx, slide.ID, map[string]interface{}{"status": status}); err != nil {
		ms.log.Warn("Failed to mark slide failure status", "slideID", slide.ID, "error", err)
	}
	ms.hub.Broadcast(sse.SSEMessage{
		Channel: sse.LessonChannel(slide.LessonID),
		Event:   event,
		Data:    map[string]any{"slide_id": slide.ID, "slide_index": slide.SlideIndex, "error": cause.Error()},
	})
}

// GenerateAllAudio narrates every slide of a lesson in order. Slides are
// processed sequentially with a short delay so the TTS backend is not
// hammered; one failure marks that slide and moves on.
func (ms *mediaService) GenerateAllAudio(ctx context.Context, userID, lessonID uuid.UUID, voice string) (*BulkResult, error) {
	return ms.runBulk(ctx, userID, lessonID, func(ctx context.Context, slide *types.Slide) error {
		_, err := ms.generateSlideAudio(ctx, userID, slide.ID, voice)
		return err
	})
}

func (ms *mediaService) GenerateAllImages(ctx context.Context, userID, lessonID uuid.UUID) (*BulkResult, error) {
	return ms.runBulk(ctx, userID, lessonID, func(ctx context.Context, slide *types.Slide) error {
		_, err := ms.GenerateSlideImage(ctx, userID, slide.ID)
		return err
	})
}

func (ms *mediaService) runBulk(ctx context.Context, userID, lessonID uuid.UUID, fn func(context.Context, *types.Slide) error) (*BulkResult, error) {
	if _, err := ms.lessonService.GetLesson(ctx, userID, lessonID); err != nil {
		return nil, err
	}
	slides, err := ms.slideService.GetByLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("Lesson has no slides")
	}

	result := &BulkResult{Total: len(slides)}
	for i, slide := range slides {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if i > 0 {
			time.Sleep(ms.bulkDelay)
		}
		if itemErr := fn(ctx, slide); itemErr != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkError{SlideIndex: slide.SlideIndex, Message: itemErr.Error()})
		} else {
			result.OK++
		}
		ms.hub.Broadcast(sse.SSEMessage{
			Channel: sse.LessonChannel(lessonID),
			Event:   sse.SSEEventBulkJobProgress,
			Data:    map[string]any{"done": i + 1, "total": len(slides), "ok": result.OK, "failed": result.Failed},
		})
	}
	ms.hub.Broadcast(sse.SSEMessage{
		Channel: sse.LessonChannel(lessonID),
		Event:   sse.SSEEventBulkJobDone,
		Data:    result,
	})
	return result, nil
}
