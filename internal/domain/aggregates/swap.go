package aggregates

import (
	"context"
	"time"

	"github.com/yungbote/slotswapper-backend/internal/domain/scheduling"
)

var SwapAggregateContract = Contract{
	Name:             "Scheduling.SwapAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes: "Owns the paired event transitions of a negotiation together with the swap request row; " +
		"the SWAPPABLE -> SWAP_PENDING conditional update is the only serialization point.",
}

// SwapAggregate owns the swap negotiation state machine.
//
// Write failures return *aggregates.Error with codes:
// CodeNotFound, CodeForbidden, CodeInvalidState, CodeRetryable, CodeInternal.
type SwapAggregate interface {
	Aggregate

	// CreateSwap opens a negotiation between two SWAPPABLE events and moves both to SWAP_PENDING.
	CreateSwap(ctx context.Context, in CreateSwapInput) (CreateSwapResult, error)

	// Respond closes a pending negotiation, exchanging ownership on accept.
	Respond(ctx context.Context, in RespondSwapInput) (RespondSwapResult, error)
}

type CreateSwapInput struct {
	RequesterUserID uint
	MySlotID        uint
	TheirSlotID     uint
	RequestedAt     time.Time
}

type CreateSwapResult struct {
	Request   *scheduling.SwapRequest
	MySlot    *scheduling.Event
	TheirSlot *scheduling.Event
}

type RespondSwapInput struct {
	ResponderUserID uint
	RequestID       uint
	Accept          bool
	RespondedAt     time.Time
}

type RespondSwapResult struct {
	Request   *scheduling.SwapRequest
	MySlot    *scheduling.Event
	TheirSlot *scheduling.Event
}
