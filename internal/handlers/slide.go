package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/services"
)

type SlideHandler struct {
	slideService  services.SlideService
	lessonService services.LessonService
}

func NewSlideHandler(slideService services.SlideService, lessonService services.LessonService) *SlideHandler {
	return &SlideHandler{slideService: slideService, lessonService: lessonService}
}

func (sh *SlideHandler) ownedSlide(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return uuid.Nil, uuid.Nil, false
	}
	slideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, uuid.Nil, false
	}
	slide, err := sh.slideService.GetByID(c.Request.Context(), slideID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return uuid.Nil, uuid.Nil, false
	}
	if _, err := sh.lessonService.GetLesson(c.Request.Context(), userID, slide.LessonID); err != nil {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, slideID, true
}

func (sh *SlideHandler) Get(c *gin.Context) {
	_, slideID, ok := sh.ownedSlide(c)
	if !ok {
		return
	}
	slide, err := sh.slideService.GetByID(c.Request.Context(), slideID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	RespondOK(c, slide)
}

// Update lets the author hand-edit slide text fields. Pipeline-owned
// columns (status, urls, optimized content) are not writable here.
func (sh *SlideHandler) Update(c *gin.Context) {
	_, slideID, ok := sh.ownedSlide(c)
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	allowed := map[string]bool{
		"title": true, "content": true, "visual_idea": true,
		"speaker_note": true, "image_prompt": true, "slide_type": true,
	}
	for key := range fields {
		if !allowed[key] {
			delete(fields, key)
		}
	}
	slide, err := sh.slideService.UpdateSlide(c.Request.Context(), slideID, fields)
	if err != nil {
		RespondServiceError(c, "update_failed", err)
		return
	}
	RespondOK(c, slide)
}
