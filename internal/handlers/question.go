package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/services"
)

type QuestionHandler struct {
	questionService services.QuestionService
}

func NewQuestionHandler(questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

func (qh *QuestionHandler) ListByLesson(c *gin.Context) {
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
	questions, err := qh.questionService.ListByLesson(c.Request.Context(), userID, lessonID)
	if err != nil {
		RespondServiceError(c, "list_failed", err)
		return
	}
	RespondOK(c, questions)
}

func (qh *QuestionHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	allowed := map[string]bool{
		"type": true, "content": true, "options": true,
		"answer": true, "explanation": true, "difficulty": true,
	}
	for key := range fields {
		if !allowed[key] {
			delete(fields, key)
		}
	}
	question, err := qh.questionService.UpdateQuestion(c.Request.Context(), userID, questionID, fields)
	if err != nil {
		RespondServiceError(c, "update_failed", err)
		return
	}
	RespondOK(c, question)
}

func (qh *QuestionHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := qh.questionService.DeleteQuestion(c.Request.Context(), userID, questionID); err != nil {
		RespondServiceError(c, "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
