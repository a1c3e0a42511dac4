package services

import (
	"context"

	types "github.com/yungbote/slotswapper-backend/internal/domain"
	"github.com/yungbote/slotswapper-backend/internal/observability"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
	"github.com/yungbote/slotswapper-backend/internal/realtime"
)

const (
	MessageSwapRequested = "You received a new swap request!"
	MessageSwapAccepted  = "Your swap request was ACCEPTED!"
	MessageSwapRejected  = "Your swap request was REJECTED."
)

// SwapNotifier pushes negotiation activity to the affected party.
type SwapNotifier interface {
	SwapRequested(ctx context.Context, req *types.SwapRequest)
	SwapResponded(ctx context.Context, req *types.SwapRequest)
}

type swapNotifier struct {
	log     *logger.Logger
	emit    SSEEmitter
	metrics *observability.Metrics
}

func NewSwapNotifier(log *logger.Logger, emit SSEEmitter, metrics *observability.Metrics) SwapNotifier {
	return &swapNotifier{
		log:     log.With("service", "SwapNotifier"),
		emit:    emit,
		metrics: metrics,
	}
}

func (n *swapNotifier) SwapRequested(ctx context.Context, req *types.SwapRequest) {
	if req == nil {
		return
	}
	n.send(ctx, req.ResponderUserID, realtime.SSEEventSwapRequested, MessageSwapRequested, req)
}

func (n *swapNotifier) SwapResponded(ctx context.Context, req *types.SwapRequest) {
	if req == nil {
		return
	}
	switch req.Status {
	case types.SwapStatusAccepted:
		n.send(ctx, req.RequesterUserID, realtime.SSEEventSwapAccepted, MessageSwapAccepted, req)
	case types.SwapStatusRejected:
		n.send(ctx, req.RequesterUserID, realtime.SSEEventSwapRejected, MessageSwapRejected, req)
	default:
		n.log.Warn("Skipping notification for unresolved swap request", "swap_request_id", req.ID, "status", string(req.Status))
	}
}

func (n *swapNotifier) send(ctx context.Context, userID uint, event realtime.SSEEvent, message string, req *types.SwapRequest) {
	if n == nil || n.emit == nil || userID == 0 {
		return
	}
	err := n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.UserChannel(userID),
		Event:   event,
		Data: map[string]any{
			"message":      message,
			"swap_request": req,
		},
	})
	if err != nil {
		n.log.Warn("Swap notification failed", "event", string(event), "swap_request_id", req.ID, "error", err)
		n.metrics.IncNotification(string(event), "failed")
		return
	}
	n.metrics.IncNotification(string(event), "sent")
}
