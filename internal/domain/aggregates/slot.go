package aggregates

import (
	"context"
	"time"

	"github.com/yungbote/slotswapper-backend/internal/domain/scheduling"
)

var SlotAggregateContract = Contract{
	Name:             "Scheduling.SlotAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns event registration, owner status toggles and deletion outside negotiations.",
}

// SlotAggregate owns per-event status legality.
//
// Write failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeForbidden, CodeInvalidStatus, CodeInvalidState,
// CodeConflict, CodeRetryable, CodeInternal.
type SlotAggregate interface {
	Aggregate

	// RegisterEvent creates a BUSY event owned by the caller.
	RegisterEvent(ctx context.Context, in RegisterEventInput) (*scheduling.Event, error)

	// SetEventStatus toggles an owned event between BUSY and SWAPPABLE.
	SetEventStatus(ctx context.Context, in SetEventStatusInput) (*scheduling.Event, error)

	// DeleteEvent removes an owned event that is not part of a pending negotiation.
	DeleteEvent(ctx context.Context, in DeleteEventInput) error
}

type RegisterEventInput struct {
	OwnerUserID uint
	Title       string
	StartTime   time.Time
	EndTime     time.Time
}

type SetEventStatusInput struct {
	CallerUserID uint
	EventID      uint
	Status       scheduling.EventStatus
}

type DeleteEventInput struct {
	CallerUserID uint
	EventID      uint
}
