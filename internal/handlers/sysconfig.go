package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/services"
)

// SysConfigHandler manages runtime settings. Admin only.
type SysConfigHandler struct {
	configService services.SystemConfigService
}

func NewSysConfigHandler(configService services.SystemConfigService) *SysConfigHandler {
	return &SysConfigHandler{configService: configService}
}

func (sch *SysConfigHandler) List(c *gin.Context) {
	if prefix := c.Query("prefix"); prefix != "" {
		group, err := sch.configService.GetGroup(c.Request.Context(), prefix)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "list_failed", err)
			return
		}
		RespondOK(c, group)
		return
	}
	entries, err := sch.configService.List(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, entries)
}

func (sch *SysConfigHandler) Set(c *gin.Context) {
	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := sch.configService.Set(c.Request.Context(), req.Key, req.Value); err != nil {
		RespondError(c, http.StatusBadRequest, "set_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (sch *SysConfigHandler) Delete(c *gin.Context) {
	key := c.Param("key")
	if err := sch.configService.Delete(c.Request.Context(), []string{key}); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
