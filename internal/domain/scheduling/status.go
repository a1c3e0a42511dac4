package scheduling

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownStatus is returned when a status literal is not one of the recognized values.
var ErrUnknownStatus = errors.New("unknown status")

// EventStatus is the negotiation state of a slot.
type EventStatus string

const (
	EventStatusBusy        EventStatus = "BUSY"
	EventStatusSwappable   EventStatus = "SWAPPABLE"
	EventStatusSwapPending EventStatus = "SWAP_PENDING"
)

// EventStatuses lists every recognized event status.
var EventStatuses = []EventStatus{EventStatusBusy, EventStatusSwappable, EventStatusSwapPending}

// ParseEventStatus accepts a recognized literal in any letter case.
func ParseEventStatus(raw string) (EventStatus, error) {
	s := EventStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: event status %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

func (s EventStatus) Valid() bool {
	return slices.Contains(EventStatuses, s)
}

// OwnerSettable reports whether an owner may move an event into s directly.
// SWAP_PENDING is entered only by opening a negotiation.
func (s EventStatus) OwnerSettable() bool {
	switch s {
	case EventStatusBusy, EventStatusSwappable:
		return true
	case EventStatusSwapPending:
		return false
	default:
		return false
	}
}

func (s EventStatus) String() string { return string(s) }

func (s *EventStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseEventStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *EventStatus) Scan(src any) error {
	raw, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseEventStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s EventStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: event status %q", ErrUnknownStatus, string(s))
	}
	return string(s), nil
}

// SwapStatus is the lifecycle state of a swap request. ACCEPTED and REJECTED are terminal.
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "PENDING"
	SwapStatusAccepted SwapStatus = "ACCEPTED"
	SwapStatusRejected SwapStatus = "REJECTED"
)

func ParseSwapStatus(raw string) (SwapStatus, error) {
	s := SwapStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: swap status %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

func (s SwapStatus) Valid() bool {
	switch s {
	case SwapStatusPending, SwapStatusAccepted, SwapStatusRejected:
		return true
	default:
		return false
	}
}

func (s SwapStatus) Terminal() bool {
	switch s {
	case SwapStatusAccepted, SwapStatusRejected:
		return true
	case SwapStatusPending:
		return false
	default:
		return false
	}
}

func (s SwapStatus) String() string { return string(s) }

func (s *SwapStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseSwapStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *SwapStatus) Scan(src any) error {
	raw, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseSwapStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s SwapStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: swap status %q", ErrUnknownStatus, string(s))
	}
	return string(s), nil
}

func scanString(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("%w: null status", ErrUnknownStatus)
	default:
		return "", fmt.Errorf("%w: unsupported status column type %T", ErrUnknownStatus, src)
	}
}
