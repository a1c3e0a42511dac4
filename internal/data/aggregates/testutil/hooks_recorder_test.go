package testutil

import (
	"testing"
	"time"
)

func TestHooksRecorder_CapturesSignals(t *testing.T) {
	h := &HooksRecorder{}
	h.ObserveOperation("Scheduling.Swap.CreateSwap", "success", 10*time.Millisecond)
	h.ObserveOperation("Scheduling.Swap.CreateSwap", "invalid_state", time.Millisecond)
	h.ObserveOperation("Scheduling.Slot.DeleteEvent", "conflict", time.Millisecond)
	h.IncConflict("Scheduling.Slot.DeleteEvent")
	h.IncRetry("Scheduling.Swap.Respond")

	if len(h.Operations) != 3 {
		t.Fatalf("expected 3 op events, got %d", len(h.Operations))
	}
	counts := h.StatusCounts("Scheduling.Swap.CreateSwap")
	if counts["success"] != 1 || counts["invalid_state"] != 1 || len(counts) != 2 {
		t.Fatalf("unexpected status counts: %+v", counts)
	}
	if len(h.Conflicts) != 1 || h.Conflicts[0] != "Scheduling.Slot.DeleteEvent" {
		t.Fatalf("unexpected conflicts: %+v", h.Conflicts)
	}
	if len(h.Retries) != 1 || h.Retries[0] != "Scheduling.Swap.Respond" {
		t.Fatalf("unexpected retries: %+v", h.Retries)
	}
}
