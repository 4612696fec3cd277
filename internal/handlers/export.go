package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/services"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func (eh *ExportHandler) ExportPPTX(c *gin.Context) {
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
	url, err := eh.exportService.ExportPPTX(c.Request.Context(), userID, lessonID)
	if err != nil {
		RespondServiceError(c, "export_failed", err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// ExportQuestions streams the question bank in the requested format
// (json by default, csv with ?format=csv).
func (eh *ExportHandler) ExportQuestions(c *gin.Context) {
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
	switch c.DefaultQuery("format", "json") {
	case "csv":
		data, err := eh.exportService.ExportQuestionsCSV(c.Request.Context(), userID, lessonID)
		if err != nil {
			RespondServiceError(c, "export_failed", err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="questions.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
	case "json":
		data, err := eh.exportService.ExportQuestionsJSON(c.Request.Context(), userID, lessonID)
		if err != nil {
			RespondServiceError(c, "export_failed", err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="questions.json"`)
		c.Data(http.StatusOK, "application/json", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json or csv"})
	}
}
