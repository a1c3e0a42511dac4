package aggregates

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/slotswapper-backend/internal/data/repos"
	types "github.com/yungbote/slotswapper-backend/internal/domain"
	domainagg "github.com/yungbote/slotswapper-backend/internal/domain/aggregates"
	"github.com/yungbote/slotswapper-backend/internal/platform/dbctx"
)

var ownerSettableStatuses = []string{
	string(types.EventStatusBusy),
	string(types.EventStatusSwappable),
}

type SlotAggregateDeps struct {
	Base BaseDeps

	Events repos.EventRepo
}

type slotAggregate struct {
	deps SlotAggregateDeps
}

func NewSlotAggregate(deps SlotAggregateDeps) domainagg.SlotAggregate {
	deps.Base = deps.Base.withDefaults()
	return &slotAggregate{deps: deps}
}

func (a *slotAggregate) Contract() domainagg.Contract {
	return domainagg.SlotAggregateContract
}

func (a *slotAggregate) RegisterEvent(ctx context.Context, in domainagg.RegisterEventInput) (*types.Event, error) {
	const op = "Scheduling.Slot.RegisterEvent"
	if in.OwnerUserID == 0 {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing owner_user_id", nil)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "title is required", nil)
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "start_time and end_time are required", nil)
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "end_time must be after start_time", nil)
	}
	if a.deps.Events == nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "slot aggregate repos not configured", nil)
	}

	var out *types.Event
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		created, err := a.deps.Events.Create(dbc, []*types.Event{{
			OwnerUserID: in.OwnerUserID,
			Title:       title,
			StartTime:   in.StartTime.UTC(),
			EndTime:     in.EndTime.UTC(),
			Status:      types.EventStatusBusy,
		}})
		if err != nil {
			return err
		}
		out = created[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *slotAggregate) SetEventStatus(ctx context.Context, in domainagg.SetEventStatusInput) (*types.Event, error) {
	const op = "Scheduling.Slot.SetEventStatus"
	if in.CallerUserID == 0 {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing caller_user_id", nil)
	}
	if in.EventID == 0 {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing event_id", nil)
	}
	if !in.Status.Valid() {
		return nil, invalidStatus(op, fmt.Sprintf("unrecognized event status %q", string(in.Status)))
	}
	if !in.Status.OwnerSettable() {
		return nil, invalidStatus(op, fmt.Sprintf("event status %s cannot be set directly", in.Status))
	}
	if a.deps.Events == nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "slot aggregate repos not configured", nil)
	}

	var out *types.Event
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		locked, err := a.deps.Events.LockByIDs(dbc, []uint{in.EventID})
		if err != nil {
			return err
		}
		ev := locked[in.EventID]
		if ev == nil {
			return notFound(op, fmt.Sprintf("event not found: %d", in.EventID))
		}
		if !ev.OwnedBy(in.CallerUserID) {
			return forbidden(op, "event is owned by another user")
		}
		if ev.Pending() {
			return invalidState(op, "event is part of a pending swap")
		}
		if ev.Status == in.Status {
			out = ev
			return nil
		}

		now := a.deps.Base.Now()
		n, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, types.Event{}.TableName(), []uint{ev.ID}, ownerSettableStatuses, map[string]any{
			"status":     string(in.Status),
			"updated_at": now,
		})
		if err != nil {
			return err
		}
		if err := RequireRowsAffected(n, 1, invalidState(op, "event entered a swap concurrently")); err != nil {
			return err
		}
		ev.Status = in.Status
		ev.UpdatedAt = now
		out = ev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *slotAggregate) DeleteEvent(ctx context.Context, in domainagg.DeleteEventInput) error {
	const op = "Scheduling.Slot.DeleteEvent"
	if in.CallerUserID == 0 {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing caller_user_id", nil)
	}
	if in.EventID == 0 {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing event_id", nil)
	}
	if a.deps.Events == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "slot aggregate repos not configured", nil)
	}

	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		locked, err := a.deps.Events.LockByIDs(dbc, []uint{in.EventID})
		if err != nil {
			return err
		}
		ev := locked[in.EventID]
		if ev == nil {
			return notFound(op, fmt.Sprintf("event not found: %d", in.EventID))
		}
		if !ev.OwnedBy(in.CallerUserID) {
			return forbidden(op, "event is owned by another user")
		}
		if ev.Pending() {
			return conflict(op, "event is part of a pending swap")
		}
		n, err := a.deps.Events.DeleteUnlessStatus(dbc, ev.ID, in.CallerUserID, types.EventStatusSwapPending)
		if err != nil {
			return err
		}
		return RequireRowsAffected(n, 1, conflict(op, "event entered a swap concurrently"))
	})
}
