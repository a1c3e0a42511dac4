package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/slotswapper-backend/internal/http/response"
	"github.com/yungbote/slotswapper-backend/internal/platform/ctxutil"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
	"github.com/yungbote/slotswapper-backend/internal/realtime"
)

type RealtimeHandler struct {
	log *logger.Logger
	hub *realtime.SSEHub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{log: log.With("handler", "RealtimeHandler"), hub: hub}
}

// GET /api/sse/stream
func (h *RealtimeHandler) SSEStream(c *gin.Context) {
	userID := ctxutil.UserID(c.Request.Context())
	if userID == 0 {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	client := h.hub.Connect(userID)
	h.log.Info("SSE stream open", "user_id", userID, "client_id", client.ID.String())

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	h.hub.Disconnect(client)
	h.log.Info("SSE stream closed", "user_id", userID, "client_id", client.ID.String())
}
