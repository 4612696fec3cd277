package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/services"
)

// FilesHandler serves stored assets. The storage layer validates every
// path segment, so traversal attempts answer 403 instead of leaking
// files outside the data root.
type FilesHandler struct {
	storageService services.StorageService
}

func NewFilesHandler(storageService services.StorageService) *FilesHandler {
	return &FilesHandler{storageService: storageService}
}

func (fh *FilesHandler) Serve(c *gin.Context) {
	key := c.Param("filepath")
	abs, err := fh.storageService.Resolve(key)
	if err != nil {
		RespondError(c, http.StatusForbidden, "forbidden_path", err)
		return
	}
	c.File(abs)
}
