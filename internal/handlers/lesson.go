package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/services"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

type LessonHandler struct {
	lessonService services.LessonService
	slideService  services.SlideService
}

func NewLessonHandler(lessonService services.LessonService, slideService services.SlideService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService, slideService: slideService}
}

func (lh *LessonHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	var req struct {
		SubjectID  uuid.UUID `json:"subject_id"`
		Title      string    `json:"title"`
		RawOutline string    `json:"raw_outline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	lesson := &types.Lesson{
		SubjectID:  req.SubjectID,
		UserID:     userID,
		Title:      req.Title,
		RawOutline: req.RawOutline,
	}
	created, err := lh.lessonService.CreateLesson(c.Request.Context(), lesson)
	if err != nil {
		RespondServiceError(c, "create_failed", err)
		return
	}
	RespondOK(c, created)
}

func (lh *LessonHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	subjectID, err := uuid.Parse(c.Query("subject_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_subject_id", err)
		return
	}
	lessons, err := lh.lessonService.ListLessons(c.Request.Context(), userID, subjectID)
	if err != nil {
		RespondServiceError(c, "list_failed", err)
		return
	}
	RespondOK(c, lessons)
}

func (lh *LessonHandler) Get(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	lesson, err := lh.lessonService.GetLesson(c.Request.Context(), userID, lessonID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	RespondOK(c, lesson)
}

func (lh *LessonHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	allowed := map[string]bool{"title": true, "raw_outline": true, "status": true}
	for key := range fields {
		if !allowed[key] {
			delete(fields, key)
		}
	}
	lesson, err := lh.lessonService.UpdateLesson(c.Request.Context(), userID, lessonID, fields)
	if err != nil {
		RespondServiceError(c, "update_failed", err)
		return
	}
	RespondOK(c, lesson)
}

func (lh *LessonHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := lh.lessonService.DeleteLesson(c.Request.Context(), userID, lessonID); err != nil {
		RespondServiceError(c, "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// Slides returns the parsed slide rows for a lesson, ordered by index.
func (lh *LessonHandler) Slides(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if _, err := lh.lessonService.GetLesson(c.Request.Context(), userID, lessonID); err != nil {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	slides, err := lh.slideService.GetByLesson(c.Request.Context(), lessonID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, slides)
}
