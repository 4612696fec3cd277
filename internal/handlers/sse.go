package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/sse"
)

// SSEHandler streams generation progress. Clients subscribe to one or
// more lesson channels via ?channels=lesson:<id>,lesson:<id>.
type SSEHandler struct {
	hub *sse.SSEHub
}

func NewSSEHandler(hub *sse.SSEHub) *SSEHandler {
	return &SSEHandler{hub: hub}
}

func (sh *SSEHandler) Stream(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	client := sh.hub.NewSSEClient(userID)
	for _, channel := range strings.Split(c.Query("channels"), ",") {
		sh.hub.AddChannel(client, channel)
	}
	defer sh.hub.CloseClient(client)

	sh.hub.ServeHTTP(c.Writer, c.Request, client)
}
