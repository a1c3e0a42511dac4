package aggregates

import (
	"context"
	"fmt"

	"github.com/yungbote/slotswapper-backend/internal/data/repos"
	types "github.com/yungbote/slotswapper-backend/internal/domain"
	domainagg "github.com/yungbote/slotswapper-backend/internal/domain/aggregates"
	"github.com/yungbote/slotswapper-backend/internal/platform/dbctx"
)

type SwapAggregateDeps struct {
	Base BaseDeps

	Events repos.EventRepo
	Swaps  repos.SwapRequestRepo
}

type swapAggregate struct {
	deps SwapAggregateDeps
}

func NewSwapAggregate(deps SwapAggregateDeps) domainagg.SwapAggregate {
	deps.Base = deps.Base.withDefaults()
	return &swapAggregate{deps: deps}
}

func (a *swapAggregate) Contract() domainagg.Contract {
	return domainagg.SwapAggregateContract
}

func (a *swapAggregate) CreateSwap(ctx context.Context, in domainagg.CreateSwapInput) (domainagg.CreateSwapResult, error) {
	const op = "Scheduling.Swap.CreateSwap"
	var out domainagg.CreateSwapResult
	if in.RequesterUserID == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing requester_user_id", nil)
	}
	if in.MySlotID == 0 || in.TheirSlotID == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "my_slot_id and their_slot_id are required", nil)
	}
	if in.MySlotID == in.TheirSlotID {
		return out, invalidState(op, "cannot swap a slot with itself")
	}
	if a.deps.Events == nil || a.deps.Swaps == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "swap aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		locked, err := a.deps.Events.LockByIDs(dbc, types.OrderedSlotIDs(in.MySlotID, in.TheirSlotID))
		if err != nil {
			return err
		}
		mine, theirs := locked[in.MySlotID], locked[in.TheirSlotID]
		if mine == nil {
			return notFound(op, fmt.Sprintf("event not found: %d", in.MySlotID))
		}
		if theirs == nil {
			return notFound(op, fmt.Sprintf("event not found: %d", in.TheirSlotID))
		}
		if !mine.OwnedBy(in.RequesterUserID) {
			return forbidden(op, "my_slot_id is owned by another user")
		}
		if theirs.OwnedBy(in.RequesterUserID) {
			return invalidState(op, "their_slot_id is already owned by the requester")
		}
		if mine.Status != types.EventStatusSwappable || theirs.Status != types.EventStatusSwappable {
			return invalidState(op, "both slots must be SWAPPABLE")
		}

		// Status gate: the only serialization point between competing negotiations.
		ids := types.OrderedSlotIDs(mine.ID, theirs.ID)
		n, err := a.deps.Events.UpdateStatusWhere(dbc, ids, []types.EventStatus{types.EventStatusSwappable}, types.EventStatusSwapPending)
		if err != nil {
			return err
		}
		if err := RequireRowsAffected(n, int64(len(ids)), invalidState(op, "slot is no longer SWAPPABLE")); err != nil {
			return err
		}

		req := &types.SwapRequest{
			RequesterUserID: in.RequesterUserID,
			ResponderUserID: theirs.OwnerUserID,
			MySlotID:        mine.ID,
			TheirSlotID:     theirs.ID,
			Status:          types.SwapStatusPending,
		}
		if !in.RequestedAt.IsZero() {
			req.CreatedAt = in.RequestedAt.UTC()
		}
		if _, err := a.deps.Swaps.Create(dbc, []*types.SwapRequest{req}); err != nil {
			return err
		}

		out.Request = req
		out.MySlot, out.TheirSlot, err = a.reload(dbc, mine.ID, theirs.ID)
		return err
	})
	if err != nil {
		return domainagg.CreateSwapResult{}, err
	}
	return out, nil
}

func (a *swapAggregate) Respond(ctx context.Context, in domainagg.RespondSwapInput) (domainagg.RespondSwapResult, error) {
	const op = "Scheduling.Swap.Respond"
	var out domainagg.RespondSwapResult
	if in.ResponderUserID == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing responder_user_id", nil)
	}
	if in.RequestID == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing request_id", nil)
	}
	if a.deps.Events == nil || a.deps.Swaps == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "swap aggregate repos not configured", nil)
	}
	respondedAt := in.RespondedAt.UTC()
	if in.RespondedAt.IsZero() {
		respondedAt = a.deps.Base.Now()
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		req, err := a.deps.Swaps.LockByID(dbc, in.RequestID)
		if err != nil {
			return err
		}
		if req == nil {
			return notFound(op, fmt.Sprintf("swap request not found: %d", in.RequestID))
		}
		if req.ResponderUserID != in.ResponderUserID {
			return forbidden(op, "only the responder may answer a swap request")
		}
		if req.Status != types.SwapStatusPending {
			return invalidState(op, fmt.Sprintf("swap request is already %s", req.Status))
		}

		locked, err := a.deps.Events.LockByIDs(dbc, req.SlotIDs())
		if err != nil {
			return err
		}
		mine, theirs := locked[req.MySlotID], locked[req.TheirSlotID]
		if mine == nil || theirs == nil {
			return notFound(op, "a slot of the swap request no longer exists")
		}
		if !mine.Pending() || !theirs.Pending() {
			return invalidState(op, "slots of the swap request are not SWAP_PENDING")
		}

		finalStatus := types.SwapStatusRejected
		if in.Accept {
			finalStatus = types.SwapStatusAccepted
			if err := a.exchange(dbc, op, mine, theirs); err != nil {
				return err
			}
		} else {
			n, err := a.deps.Events.UpdateStatusWhere(dbc, req.SlotIDs(), []types.EventStatus{types.EventStatusSwapPending}, types.EventStatusSwappable)
			if err != nil {
				return err
			}
			if err := RequireRowsAffected(n, 2, invalidState(op, "slots changed while rejecting")); err != nil {
				return err
			}
		}

		n, err := a.deps.Swaps.TransitionStatus(dbc, req.ID, types.SwapStatusPending, finalStatus, respondedAt)
		if err != nil {
			return err
		}
		if err := RequireRowsAffected(n, 1, invalidState(op, "swap request was answered concurrently")); err != nil {
			return err
		}
		req.Status = finalStatus
		req.RespondedAt = &respondedAt

		out.Request = req
		out.MySlot, out.TheirSlot, err = a.reload(dbc, mine.ID, theirs.ID)
		return err
	})
	if err != nil {
		return domainagg.RespondSwapResult{}, err
	}
	return out, nil
}

// exchange hands each slot to the other party and closes both as BUSY.
func (a *swapAggregate) exchange(dbc dbctx.Context, op string, mine, theirs *types.Event) error {
	requesterID, responderID := mine.OwnerUserID, theirs.OwnerUserID
	n, err := a.deps.Events.TransferWhere(dbc, mine.ID, types.EventStatusSwapPending, responderID, types.EventStatusBusy)
	if err != nil {
		return err
	}
	if err := RequireRowsAffected(n, 1, invalidState(op, "my_slot changed while accepting")); err != nil {
		return err
	}
	n, err = a.deps.Events.TransferWhere(dbc, theirs.ID, types.EventStatusSwapPending, requesterID, types.EventStatusBusy)
	if err != nil {
		return err
	}
	return RequireRowsAffected(n, 1, invalidState(op, "their_slot changed while accepting"))
}

func (a *swapAggregate) reload(dbc dbctx.Context, myID, theirID uint) (*types.Event, *types.Event, error) {
	rows, err := a.deps.Events.GetByIDs(dbc, []uint{myID, theirID})
	if err != nil {
		return nil, nil, err
	}
	var mine, theirs *types.Event
	for _, ev := range rows {
		switch ev.ID {
		case myID:
			mine = ev
		case theirID:
			theirs = ev
		}
	}
	if mine == nil || theirs == nil {
		return nil, nil, fmt.Errorf("reload swap slots %d/%d: missing rows", myID, theirID)
	}
	return mine, theirs, nil
}
