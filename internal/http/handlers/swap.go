package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/slotswapper-backend/internal/domain"
	"github.com/yungbote/slotswapper-backend/internal/http/response"
	"github.com/yungbote/slotswapper-backend/internal/services"
)

type SwapHandler struct {
	swaps services.SwapService
}

func NewSwapHandler(swaps services.SwapService) *SwapHandler {
	return &SwapHandler{swaps: swaps}
}

type createSwapRequest struct {
	MySlotID    uint `json:"my_slot_id" binding:"required"`
	TheirSlotID uint `json:"their_slot_id" binding:"required"`
}

type respondSwapRequest struct {
	Accept *bool `json:"accept"`
}

// POST /api/swap-requests
func (h *SwapHandler) CreateSwap(c *gin.Context) {
	var req createSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	swap, err := h.swaps.CreateSwap(c.Request.Context(), req.MySlotID, req.TheirSlotID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Swap request sent", "swap_request": swap})
}

// POST /api/swap-requests/:id/response
func (h *SwapHandler) RespondSwap(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_swap_request_id", err)
		return
	}
	var req respondSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	if req.Accept == nil {
		response.RespondError(c, http.StatusBadRequest, "validation", errors.New("accept is required"))
		return
	}
	swap, err := h.swaps.Respond(c.Request.Context(), id, *req.Accept)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	msg := "Swap rejected"
	if swap.Status == types.SwapStatusAccepted {
		msg = "Swap accepted"
	}
	response.RespondOK(c, gin.H{"message": msg, "swap_request": swap})
}

// GET /api/swap-requests/:id
func (h *SwapHandler) GetSwap(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_swap_request_id", err)
		return
	}
	swap, err := h.swaps.GetSwap(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"swap_request": swap})
}

// GET /api/swap-requests/incoming
func (h *SwapHandler) ListIncoming(c *gin.Context) {
	swaps, err := h.swaps.ListIncoming(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"swap_requests": swaps})
}

// GET /api/swap-requests/outgoing
func (h *SwapHandler) ListOutgoing(c *gin.Context) {
	swaps, err := h.swaps.ListOutgoing(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"swap_requests": swaps})
}
