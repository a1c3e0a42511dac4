package services

import (
	"context"
	"time"

	"github.com/yungbote/slotswapper-backend/internal/data/aggregates"
	"github.com/yungbote/slotswapper-backend/internal/data/repos"
	types "github.com/yungbote/slotswapper-backend/internal/domain"
	domainagg "github.com/yungbote/slotswapper-backend/internal/domain/aggregates"
	"github.com/yungbote/slotswapper-backend/internal/platform/dbctx"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
)

// SlotService is the Slot Registry as seen by the authenticated caller.
type SlotService interface {
	RegisterEvent(ctx context.Context, title string, start, end time.Time) (*types.Event, error)
	SetEventStatus(ctx context.Context, eventID uint, status string) (*types.Event, error)
	DeleteEvent(ctx context.Context, eventID uint) error
	GetEvent(ctx context.Context, eventID uint) (*types.Event, error)
	ListMine(ctx context.Context) ([]*types.Event, error)
	ListSwappable(ctx context.Context) ([]*types.Event, error)
}

type slotService struct {
	log    *logger.Logger
	slots  domainagg.SlotAggregate
	events repos.EventRepo
}

func NewSlotService(log *logger.Logger, slots domainagg.SlotAggregate, events repos.EventRepo) SlotService {
	return &slotService{
		log:    log.With("service", "SlotService"),
		slots:  slots,
		events: events,
	}
}

func (s *slotService) RegisterEvent(ctx context.Context, title string, start, end time.Time) (*types.Event, error) {
	uid, err := callerID(ctx, "Slot.RegisterEvent")
	if err != nil {
		return nil, err
	}
	return s.slots.RegisterEvent(ctx, domainagg.RegisterEventInput{
		OwnerUserID: uid,
		Title:       title,
		StartTime:   start,
		EndTime:     end,
	})
}

func (s *slotService) SetEventStatus(ctx context.Context, eventID uint, status string) (*types.Event, error) {
	const op = "Slot.SetEventStatus"
	uid, err := callerID(ctx, op)
	if err != nil {
		return nil, err
	}
	parsed, err := types.ParseEventStatus(status)
	if err != nil {
		return nil, domainagg.NewError(domainagg.CodeInvalidStatus, op, "unrecognized status", err)
	}
	return s.slots.SetEventStatus(ctx, domainagg.SetEventStatusInput{
		CallerUserID: uid,
		EventID:      eventID,
		Status:       parsed,
	})
}

func (s *slotService) DeleteEvent(ctx context.Context, eventID uint) error {
	uid, err := callerID(ctx, "Slot.DeleteEvent")
	if err != nil {
		return err
	}
	return s.slots.DeleteEvent(ctx, domainagg.DeleteEventInput{CallerUserID: uid, EventID: eventID})
}

// GetEvent returns an owned event, or any event offered for swapping or under negotiation.
func (s *slotService) GetEvent(ctx context.Context, eventID uint) (*types.Event, error) {
	const op = "Slot.GetEvent"
	uid, err := callerID(ctx, op)
	if err != nil {
		return nil, err
	}
	ev, err := s.events.GetByID(dbctx.Context{Ctx: ctx}, eventID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if ev == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "event not found", nil)
	}
	if !ev.OwnedBy(uid) && ev.Status == types.EventStatusBusy {
		return nil, domainagg.NewError(domainagg.CodeForbidden, op, "event is not shared", nil)
	}
	return ev, nil
}

func (s *slotService) ListMine(ctx context.Context) ([]*types.Event, error) {
	const op = "Slot.ListMine"
	uid, err := callerID(ctx, op)
	if err != nil {
		return nil, err
	}
	out, err := s.events.ListByOwner(dbctx.Context{Ctx: ctx}, uid)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return out, nil
}

func (s *slotService) ListSwappable(ctx context.Context) ([]*types.Event, error) {
	const op = "Slot.ListSwappable"
	uid, err := callerID(ctx, op)
	if err != nil {
		return nil, err
	}
	out, err := s.events.ListSwappable(dbctx.Context{Ctx: ctx}, uid)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return out, nil
}
