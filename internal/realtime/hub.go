package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
)

const defaultHeartbeat = 15 * time.Second

// SSEHub keeps at most one live client per user. A new connection for a user
// replaces the previous one; messages for users with no live client are dropped.
type SSEHub struct {
	mu        sync.RWMutex
	logger    *logger.Logger
	clients   map[string]*SSEClient
	heartbeat time.Duration
	onCount   func(n int)
}

type HubOption func(*SSEHub)

func WithHeartbeat(d time.Duration) HubOption {
	return func(h *SSEHub) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

// WithClientCountObserver reports the number of live clients after every change.
func WithClientCountObserver(fn func(n int)) HubOption {
	return func(h *SSEHub) { h.onCount = fn }
}

func NewSSEHub(log *logger.Logger, opts ...HubOption) *SSEHub {
	hub := &SSEHub{
		logger:    log.With("component", "SSEHub"),
		clients:   make(map[string]*SSEClient),
		heartbeat: defaultHeartbeat,
	}
	for _, opt := range opts {
		opt(hub)
	}
	return hub
}

// Connect registers a fresh client for userID, closing any client it replaces.
func (hub *SSEHub) Connect(userID uint) *SSEClient {
	client := newSSEClient(userID, hub.logger)

	hub.mu.Lock()
	prev := hub.clients[client.Channel]
	hub.clients[client.Channel] = client
	n := len(hub.clients)
	hub.mu.Unlock()

	if prev != nil {
		prev.close()
		hub.logger.Debug("SSE client replaced", "user_id", userID, "previous_client_id", prev.ID.String())
	}
	hub.logger.Debug("SSE client connected", "user_id", userID, "client_id", client.ID.String())
	hub.reportCount(n)
	return client
}

// Disconnect removes client if it is still the user's live client.
func (hub *SSEHub) Disconnect(client *SSEClient) {
	if client == nil {
		return
	}
	hub.mu.Lock()
	removed := false
	if cur, ok := hub.clients[client.Channel]; ok && cur == client {
		delete(hub.clients, client.Channel)
		removed = true
	}
	n := len(hub.clients)
	hub.mu.Unlock()

	client.close()
	if removed {
		hub.logger.Debug("SSE client disconnected", "user_id", client.UserID, "client_id", client.ID.String())
		hub.reportCount(n)
	}
}

// Broadcast delivers msg to the live client of msg.Channel, if any, and reports delivery.
// A full outbound buffer drops the message.
func (hub *SSEHub) Broadcast(msg SSEMessage) bool {
	if msg.Channel == "" {
		return false
	}
	hub.mu.RLock()
	client, ok := hub.clients[msg.Channel]
	hub.mu.RUnlock()
	if !ok {
		return false
	}
	select {
	case <-client.done:
		return false
	default:
	}
	select {
	case client.Outbound <- msg:
		return true
	default:
		hub.logger.Warn("Dropping SSE message; outbound buffer full", "client_id", client.ID.String(), "event", string(msg.Event))
		return false
	}
}

func (hub *SSEHub) Connected(userID uint) bool {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	_, ok := hub.clients[UserChannel(userID)]
	return ok
}

func (hub *SSEHub) Count() int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.clients)
}

// CloseAll ends every live stream.
func (hub *SSEHub) CloseAll() {
	hub.mu.Lock()
	clients := hub.clients
	hub.clients = make(map[string]*SSEClient)
	hub.mu.Unlock()
	for _, c := range clients {
		c.close()
	}
	hub.reportCount(0)
}

func (hub *SSEHub) reportCount(n int) {
	if hub.onCount != nil {
		hub.onCount(n)
	}
}

// ServeHTTP streams client messages until the request ends or the client is replaced.
func (hub *SSEHub) ServeHTTP(w http.ResponseWriter, r *http.Request, client *SSEClient) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported!", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ctx := r.Context()
	heartbeat := time.NewTicker(hub.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			hub.logger.Debug("SSE client context done", "client_id", client.ID.String(), "err", ctx.Err())
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			_, _ = fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg := <-client.Outbound:
			jsonBytes, err := json.Marshal(msg)
			if err != nil {
				hub.logger.Warn("Failed to marshal SSE message", "error", err)
				continue
			}
			_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, jsonBytes)
			flusher.Flush()
		}
	}
}
