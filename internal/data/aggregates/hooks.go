package aggregates

import (
	"strings"
	"time"

	"github.com/yungbote/slotswapper-backend/internal/observability"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
)

// Hooks captures aggregate-level observability events.
type Hooks interface {
	ObserveOperation(name, status string, dur time.Duration)
	IncConflict(name string)
	IncRetry(name string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConflict(string)                             {}
func (noopHooks) IncRetry(string)                                {}

type observabilityHooks struct {
	metrics *observability.Metrics
}

// NewObservabilityHooks creates aggregate hooks backed by observability metrics.
func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return &observabilityHooks{metrics: metrics}
}

func (h *observabilityHooks) ObserveOperation(name, status string, dur time.Duration) {
	h.metrics.ObserveAggregateOperation(strings.TrimSpace(name), strings.TrimSpace(status), dur)
}

func (h *observabilityHooks) IncConflict(name string) {
	h.metrics.IncAggregateConflict(strings.TrimSpace(name))
}

func (h *observabilityHooks) IncRetry(name string) {
	h.metrics.IncAggregateRetry(strings.TrimSpace(name))
}

type logHooks struct {
	log *logger.Logger
}

// NewLogHooks logs failed aggregate operations. Successes are logged at debug.
func NewLogHooks(log *logger.Logger) Hooks {
	if log == nil {
		return noopHooks{}
	}
	return &logHooks{log: log.With("component", "AggregateHooks")}
}

func (h *logHooks) ObserveOperation(name, status string, dur time.Duration) {
	switch status {
	case "success":
		h.log.Debug("aggregate operation", "operation", name, "status", status, "duration_ms", dur.Milliseconds())
	case "internal":
		h.log.Error("aggregate operation failed", "operation", name, "status", status, "duration_ms", dur.Milliseconds())
	default:
		h.log.Info("aggregate operation rejected", "operation", name, "status", status, "duration_ms", dur.Milliseconds())
	}
}

func (h *logHooks) IncConflict(name string) {
	h.log.Warn("aggregate conflict", "operation", name)
}

func (h *logHooks) IncRetry(name string) {
	h.log.Warn("aggregate retryable failure", "operation", name)
}

type multiHooks []Hooks

// MultiHooks fans every signal out to each non-nil hook.
func MultiHooks(hooks ...Hooks) Hooks {
	out := make(multiHooks, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			out = append(out, h)
		}
	}
	if len(out) == 0 {
		return noopHooks{}
	}
	return out
}

func (m multiHooks) ObserveOperation(name, status string, dur time.Duration) {
	for _, h := range m {
		h.ObserveOperation(name, status, dur)
	}
}

func (m multiHooks) IncConflict(name string) {
	for _, h := range m {
		h.IncConflict(name)
	}
}

func (m multiHooks) IncRetry(name string) {
	for _, h := range m {
		h.IncRetry(name)
	}
}
