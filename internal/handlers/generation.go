package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/services"
)

// GenerationHandler exposes the AI pipeline stages: outline, slide
// script, re-parse, optimization, media, and questions.
type GenerationHandler struct {
	generationService services.GenerationService
	mediaService      services.MediaService
	ttsService        services.TTSService
}

func NewGenerationHandler(
	generationService services.GenerationService,
	mediaService services.MediaService,
	ttsService services.TTSService,
) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		mediaService:      mediaService,
		ttsService:        ttsService,
	}
}

func (gh *GenerationHandler) lessonParam(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return uuid.Nil, uuid.Nil, false
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, lessonID, true
}

func (gh *GenerationHandler) GenerateOutline(c *gin.Context) {
	userID, lessonID, ok := gh.lessonParam(c)
	if !ok {
		return
	}
	lesson, err := gh.generationService.GenerateOutline(c.Request.Context(), userID, lessonID)
	if err != nil {
		RespondServiceError(c, "outline_failed", err)
		return
	}
	RespondOK(c, lesson)
}

func (gh *GenerationHandler) GenerateSlideScript(c *gin.Context) {
	userID, lessonID, ok := gh.lessonParam(c)
	if !ok {
		return
	}
	slides, err := gh.generationService.GenerateSlideScript(c.Request.Context(), userID, lessonID)
	if err != nil {
		RespondServiceError(c, "script_failed", err)
		return
	}
	RespondOK(c, slides)
}

// ReparseScript accepts a hand-edited script and rebuilds the slides.
func (gh *GenerationHandler) ReparseScript(c *gin.Context) {
	userID, lessonID, ok := gh.lessonParam(c)
	if !ok {
		return
	}
	var req struct {
		Script string `json:"script"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	slides, err := gh.generationService.ReparseSlideScript(c.Request.Context(), userID, lessonID, req.Script)
	if err != nil {
		RespondServiceError(c, "parse_failed", err)
		return
	}
	RespondOK(c, slides)
}

func (gh *GenerationHandler) OptimizeSlide(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	slideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	slide, err := gh.generationService.OptimizeSlide(c.Request.Context(), userID, slideID)
	if err != nil {
		RespondServiceError(c, "optimize_failed", err)
		return
	}
	RespondOK(c, slide)
}

func (gh *GenerationHandler) GenerateSlideAudio(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	slideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	slide, err := gh.mediaService.GenerateSlideAudio(c.Request.Context(), userID, slideID)
	if err != nil {
		RespondServiceError(c, "audio_failed", err)
		return
	}
	RespondOK(c, slide)
}

func (gh *GenerationHandler) GenerateSlideImage(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	slideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	slide, err := gh.mediaService.GenerateSlideImage(c.Request.Context(), userID, slideID)
	if err != nil {
		RespondServiceError(c, "image_failed", err)
		return
	}
	RespondOK(c, slide)
}

func (gh *GenerationHandler) GenerateAllAudio(c *gin.Context) {
	userID, lessonID, ok := gh.lessonParam(c)
	if !ok {
		return
	}
	var req struct {
		Voice string `json:"voice"`
	}
	_ = c.ShouldBindJSON(&req)
	result, err := gh.mediaService.GenerateAllAudio(c.Request.Context(), userID, lessonID, req.Voice)
	if err != nil {
		RespondServiceError(c, "bulk_audio_failed", err)
		return
	}
	RespondOK(c, result)
}

func (gh *GenerationHandler) GenerateAllImages(c *gin.Context) {
	userID, lessonID, ok := gh.lessonParam(c)
	if !ok {
		return
	}
	result, err := gh.mediaService.GenerateAllImages(c.Request.Context(), userID, lessonID)
	if err != nil {
		RespondServiceError(c, "bulk_images_failed", err)
		return
	}
	RespondOK(c, result)
}

func (gh *GenerationHandler) GenerateQuestions(c *gin.Context) {
	userID, lessonID, ok := gh.lessonParam(c)
	if !ok {
		return
	}
	var req struct {
		Count int `json:"count"`
	}
	_ = c.ShouldBindJSON(&req)
	questions, err := gh.generationService.GenerateQuestions(c.Request.Context(), userID, lessonID, req.Count)
	if err != nil {
		RespondServiceError(c, "questions_failed", err)
		return
	}
	RespondOK(c, questions)
}

func (gh *GenerationHandler) ListVoices(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	voices, err := gh.ttsService.ListVoices(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, "voices_failed", err)
		return
	}
	RespondOK(c, gin.H{"provider": gh.ttsService.ActiveProvider(c.Request.Context()), "voices": voices})
}
