package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/services"
)

// TemplateHandler manages prompt templates. Admin only.
type TemplateHandler struct {
	promptService services.PromptService
}

func NewTemplateHandler(promptService services.PromptService) *TemplateHandler {
	return &TemplateHandler{promptService: promptService}
}

func (th *TemplateHandler) List(c *gin.Context) {
	templates, err := th.promptService.ListTemplates(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, templates)
}

func (th *TemplateHandler) Create(c *gin.Context) {
	var req struct {
		Slug    string `json:"slug"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	tpl, err := th.promptService.CreateTemplate(c.Request.Context(), req.Slug, req.Content)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	RespondOK(c, tpl)
}

func (th *TemplateHandler) Update(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Content  string `json:"content"`
		IsActive *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	tpl, err := th.promptService.UpdateTemplate(c.Request.Context(), templateID, req.Content, req.IsActive)
	if err != nil {
		RespondServiceError(c, "update_failed", err)
		return
	}
	RespondOK(c, tpl)
}

func (th *TemplateHandler) Delete(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := th.promptService.DeleteTemplates(c.Request.Context(), []uuid.UUID{templateID}); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
