package scheduling

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseEventStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    EventStatus
		wantErr bool
	}{
		{in: "BUSY", want: EventStatusBusy},
		{in: " swappable ", want: EventStatusSwappable},
		{in: "SWAP_PENDING", want: EventStatusSwapPending},
		{in: "", wantErr: true},
		{in: "FREE", wantErr: true},
		{in: "SWAP PENDING", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseEventStatus(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownStatus) {
				t.Fatalf("ParseEventStatus(%q): expected ErrUnknownStatus, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseEventStatus(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseEventStatus(%q): want=%s got=%s", tc.in, tc.want, got)
		}
	}
}

func TestEventStatusOwnerSettableExcludesSwapPending(t *testing.T) {
	if !EventStatusBusy.OwnerSettable() || !EventStatusSwappable.OwnerSettable() {
		t.Fatalf("BUSY and SWAPPABLE must be owner settable")
	}
	if EventStatusSwapPending.OwnerSettable() {
		t.Fatalf("SWAP_PENDING must not be owner settable")
	}
	if EventStatus("OTHER").OwnerSettable() {
		t.Fatalf("unknown status must not be owner settable")
	}
}

func TestEventStatusJSONRejectsUnknownLiteral(t *testing.T) {
	var body struct {
		Status EventStatus `json:"status"`
	}
	if err := json.Unmarshal([]byte(`{"status":"swappable"}`), &body); err != nil {
		t.Fatalf("Unmarshal known: %v", err)
	}
	if body.Status != EventStatusSwappable {
		t.Fatalf("status: want=%s got=%s", EventStatusSwappable, body.Status)
	}
	err := json.Unmarshal([]byte(`{"status":"MAYBE"}`), &body)
	if !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("Unmarshal unknown: expected ErrUnknownStatus, got %v", err)
	}
}

func TestStatusScanAndValue(t *testing.T) {
	var s EventStatus
	if err := s.Scan([]byte("SWAP_PENDING")); err != nil {
		t.Fatalf("Scan bytes: %v", err)
	}
	if s != EventStatusSwapPending {
		t.Fatalf("Scan: want=%s got=%s", EventStatusSwapPending, s)
	}
	if err := s.Scan("garbage"); err == nil {
		t.Fatalf("Scan garbage: expected error")
	}
	if _, err := EventStatus("").Value(); err == nil {
		t.Fatalf("Value empty: expected error")
	}

	var ss SwapStatus
	if err := ss.Scan("ACCEPTED"); err != nil {
		t.Fatalf("SwapStatus Scan: %v", err)
	}
	if !ss.Terminal() {
		t.Fatalf("ACCEPTED must be terminal")
	}
	if SwapStatusPending.Terminal() {
		t.Fatalf("PENDING must not be terminal")
	}
}

func TestSwapRequestSlotIDsAscending(t *testing.T) {
	r := &SwapRequest{MySlotID: 9, TheirSlotID: 3}
	ids := r.SlotIDs()
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 9 {
		t.Fatalf("SlotIDs: want=[3 9] got=%v", ids)
	}
	if !r.References(9) || !r.References(3) || r.References(4) {
		t.Fatalf("References: unexpected result")
	}
	r.RequesterUserID, r.ResponderUserID = 1, 2
	if !r.VisibleTo(1) || !r.VisibleTo(2) || r.VisibleTo(3) {
		t.Fatalf("VisibleTo: unexpected result")
	}
}

func TestEventStatusesAreTheValidSet(t *testing.T) {
	if len(EventStatuses) != 3 {
		t.Fatalf("EventStatuses: want=3 got=%d", len(EventStatuses))
	}
	for _, s := range EventStatuses {
		if !s.Valid() {
			t.Fatalf("%s: expected Valid", s)
		}
	}
	if EventStatus("busy").Valid() {
		t.Fatalf("lower-case literal must not be Valid without parsing")
	}
}
