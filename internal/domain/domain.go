package domain

import (
	"github.com/yungbote/slotswapper-backend/internal/domain/scheduling"
	"github.com/yungbote/slotswapper-backend/internal/domain/user"
)

const (
	EventStatusBusy        = scheduling.EventStatusBusy
	EventStatusSwappable   = scheduling.EventStatusSwappable
	EventStatusSwapPending = scheduling.EventStatusSwapPending

	SwapStatusPending  = scheduling.SwapStatusPending
	SwapStatusAccepted = scheduling.SwapStatusAccepted
	SwapStatusRejected = scheduling.SwapStatusRejected
)

type User = user.User

type Event = scheduling.Event
type EventStatus = scheduling.EventStatus
type SwapRequest = scheduling.SwapRequest
type SwapStatus = scheduling.SwapStatus

var (
	ParseEventStatus = scheduling.ParseEventStatus
	ParseSwapStatus  = scheduling.ParseSwapStatus
	OrderedSlotIDs   = scheduling.OrderedSlotIDs
)
