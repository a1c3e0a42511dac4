package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/slotswapper-backend/internal/http/response"
	"github.com/yungbote/slotswapper-backend/internal/services"
)

type EventHandler struct {
	slots services.SlotService
}

func NewEventHandler(slots services.SlotService) *EventHandler {
	return &EventHandler{slots: slots}
}

type createEventRequest struct {
	Title     string    `json:"title" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type setEventStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// POST /api/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	ev, err := h.slots.RegisterEvent(c.Request.Context(), req.Title, req.StartTime, req.EndTime)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"event": ev})
}

// GET /api/events/mine
func (h *EventHandler) ListMyEvents(c *gin.Context) {
	events, err := h.slots.ListMine(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"events": events})
}

// GET /api/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_event_id", err)
		return
	}
	ev, err := h.slots.GetEvent(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"event": ev})
}

// PATCH /api/events/:id/status
func (h *EventHandler) SetEventStatus(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_event_id", err)
		return
	}
	var req setEventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_status", err)
		return
	}
	ev, err := h.slots.SetEventStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"event": ev})
}

// DELETE /api/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_event_id", err)
		return
	}
	if err := h.slots.DeleteEvent(c.Request.Context(), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Event deleted"})
}

// GET /api/swappable-slots
func (h *EventHandler) ListSwappable(c *gin.Context) {
	events, err := h.slots.ListSwappable(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"events": events})
}
