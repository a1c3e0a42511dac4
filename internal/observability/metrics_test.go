package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetricsWritePrometheus(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("POST", "/api/swap-requests", "201", 20*time.Millisecond)
	m.ObserveAggregateOperation("swap.create", "success", 5*time.Millisecond)
	m.IncAggregateConflict("slot.delete")
	m.IncNotification("swap.requested", "sent")
	m.SetSSEClients(3)

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`ss_api_requests_total{method="POST",route="/api/swap-requests",status="201"} 1.000000`,
		`ss_aggregate_operations_total{operation="swap.create",status="success"} 1.000000`,
		`ss_aggregate_conflicts_total{operation="slot.delete"} 1.000000`,
		`ss_notifications_total{event="swap.requested",outcome="sent"} 1.000000`,
		`ss_sse_clients 3.000000`,
		`ss_api_request_duration_seconds_bucket{method="POST",route="/api/swap-requests",status="201",le="+Inf"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing line %q in:\n%s", want, out)
		}
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.IncNotification("swap.requested", "failed")
	m.SetSSEClients(1)
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil WritePrometheus: %v", err)
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := NewHistogramVec("h", "test", []string{"op"}, []float64{0.1, 1})
	h.Observe(0.05, "x")
	h.Observe(0.5, "x")
	h.Observe(3, "x")

	var buf bytes.Buffer
	if err := h.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`h_bucket{op="x",le="0.1"} 1`,
		`h_bucket{op="x",le="1"} 2`,
		`h_bucket{op="x",le="+Inf"} 3`,
		`h_count{op="x"} 3`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing line %q in:\n%s", want, out)
		}
	}
}

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" a=1, b = 2 ,broken,=x")
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("ParseHeaders: got=%v", got)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("ParseHeaders empty: want nil")
	}
}
