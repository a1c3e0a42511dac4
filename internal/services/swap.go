package services

import (
	"context"
	"sync"
	"time"

	"github.com/yungbote/slotswapper-backend/internal/data/aggregates"
	"github.com/yungbote/slotswapper-backend/internal/data/repos"
	types "github.com/yungbote/slotswapper-backend/internal/domain"
	domainagg "github.com/yungbote/slotswapper-backend/internal/domain/aggregates"
	"github.com/yungbote/slotswapper-backend/internal/platform/dbctx"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
)

const defaultNotifyTimeout = 5 * time.Second

// SwapService is the Swap Negotiation Engine as seen by the authenticated caller.
type SwapService interface {
	CreateSwap(ctx context.Context, mySlotID, theirSlotID uint) (*types.SwapRequest, error)
	Respond(ctx context.Context, requestID uint, accept bool) (*types.SwapRequest, error)
	GetSwap(ctx context.Context, requestID uint) (*types.SwapRequest, error)
	ListIncoming(ctx context.Context) ([]*types.SwapRequest, error)
	ListOutgoing(ctx context.Context) ([]*types.SwapRequest, error)
	// Wait blocks until in-flight notifications finish or ctx ends.
	Wait(ctx context.Context) error
}

type SwapServiceDeps struct {
	Log           *logger.Logger
	Swaps         domainagg.SwapAggregate
	Requests      repos.SwapRequestRepo
	Notifier      SwapNotifier
	NotifyTimeout time.Duration
}

type swapService struct {
	log           *logger.Logger
	swaps         domainagg.SwapAggregate
	requests      repos.SwapRequestRepo
	notifier      SwapNotifier
	notifyTimeout time.Duration
	inflight      sync.WaitGroup
}

func NewSwapService(deps SwapServiceDeps) SwapService {
	timeout := deps.NotifyTimeout
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	return &swapService{
		log:           deps.Log.With("service", "SwapService"),
		swaps:         deps.Swaps,
		requests:      deps.Requests,
		notifier:      deps.Notifier,
		notifyTimeout: timeout,
	}
}

func (s *swapService) CreateSwap(ctx context.Context, mySlotID, theirSlotID uint) (*types.SwapRequest, error) {
	uid, err := callerID(ctx, "Swap.CreateSwap")
	if err != nil {
		return nil, err
	}
	res, err := s.swaps.CreateSwap(ctx, domainagg.CreateSwapInput{
		RequesterUserID: uid,
		MySlotID:        mySlotID,
		TheirSlotID:     theirSlotID,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Swap requested", "swap_request_id", res.Request.ID, "requester_id", uid, "responder_id", res.Request.ResponderUserID)
	req := *res.Request
	s.notifyAsync(func(nctx context.Context) { s.notifier.SwapRequested(nctx, &req) })
	return res.Request, nil
}

func (s *swapService) Respond(ctx context.Context, requestID uint, accept bool) (*types.SwapRequest, error) {
	uid, err := callerID(ctx, "Swap.Respond")
	if err != nil {
		return nil, err
	}
	res, err := s.swaps.Respond(ctx, domainagg.RespondSwapInput{
		ResponderUserID: uid,
		RequestID:       requestID,
		Accept:          accept,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Swap resolved", "swap_request_id", res.Request.ID, "status", string(res.Request.Status), "responder_id", uid)
	req := *res.Request
	s.notifyAsync(func(nctx context.Context) { s.notifier.SwapResponded(nctx, &req) })
	return res.Request, nil
}

func (s *swapService) GetSwap(ctx context.Context, requestID uint) (*types.SwapRequest, error) {
	const op = "Swap.GetSwap"
	uid, err := callerID(ctx, op)
	if err != nil {
		return nil, err
	}
	req, err := s.requests.GetByID(dbctx.Context{Ctx: ctx}, requestID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if req == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "swap request not found", nil)
	}
	if !req.VisibleTo(uid) {
		return nil, domainagg.NewError(domainagg.CodeForbidden, op, "not a party to this swap request", nil)
	}
	return req, nil
}

func (s *swapService) ListIncoming(ctx context.Context) ([]*types.SwapRequest, error) {
	const op = "Swap.ListIncoming"
	uid, err := callerID(ctx, op)
	if err != nil {
		return nil, err
	}
	out, err := s.requests.ListIncomingPending(dbctx.Context{Ctx: ctx}, uid)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return out, nil
}

func (s *swapService) ListOutgoing(ctx context.Context) ([]*types.SwapRequest, error) {
	const op = "Swap.ListOutgoing"
	uid, err := callerID(ctx, op)
	if err != nil {
		return nil, err
	}
	out, err := s.requests.ListOutgoing(dbctx.Context{Ctx: ctx}, uid)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return out, nil
}

func (s *swapService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// notifyAsync runs fn after the caller's transaction has committed. It is detached
// from the request context so a client hanging up does not cancel delivery.
func (s *swapService) notifyAsync(fn func(ctx context.Context)) {
	if s.notifier == nil {
		return
	}
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("Swap notification panicked", "panic", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()
		fn(ctx)
	}()
}
