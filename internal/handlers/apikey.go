package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/services"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

type ApiKeyHandler struct {
	apiKeyService services.ApiKeyService
}

func NewApiKeyHandler(apiKeyService services.ApiKeyService) *ApiKeyHandler {
	return &ApiKeyHandler{apiKeyService: apiKeyService}
}

type apiKeyRequest struct {
	Service string `json:"service"`
	Value   string `json:"value"`
	Label   string `json:"label"`
}

func (akh *ApiKeyHandler) SetUserKey(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	var req apiKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	key, err := akh.apiKeyService.SetUserKey(c.Request.Context(), userID, types.ApiKeyService(req.Service), req.Value, req.Label)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "store_failed", err)
		return
	}
	RespondOK(c, key)
}

func (akh *ApiKeyHandler) ListUserKeys(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	keys, err := akh.apiKeyService.ListUserKeys(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, keys)
}

// DeleteKey removes one of the caller's own keys. System keys are out of
// reach here; admins manage those through the admin routes.
func (akh *ApiKeyHandler) DeleteKey(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	keyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := akh.apiKeyService.DeleteUserKey(c.Request.Context(), userID, keyID); err != nil {
		RespondServiceError(c, "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// SetSystemKey stores a shared fallback credential. Admin only.
func (akh *ApiKeyHandler) SetSystemKey(c *gin.Context) {
	var req apiKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	key, err := akh.apiKeyService.SetSystemKey(c.Request.Context(), types.ApiKeyService(req.Service), req.Value, req.Label)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "store_failed", err)
		return
	}
	RespondOK(c, key)
}

func (akh *ApiKeyHandler) DeleteSystemKey(c *gin.Context) {
	keyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := akh.apiKeyService.DeleteSystemKey(c.Request.Context(), keyID); err != nil {
		RespondServiceError(c, "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (akh *ApiKeyHandler) ListSystemKeys(c *gin.Context) {
	keys, err := akh.apiKeyService.ListSystemKeys(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, keys)
}
