package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
)

const outboundBuffer = 16

type SSEClient struct {
	ID       uuid.UUID
	UserID   uint
	Channel  string
	Outbound chan SSEMessage
	Logger   *logger.Logger

	done      chan struct{}
	closeOnce sync.Once
}

func newSSEClient(userID uint, log *logger.Logger) *SSEClient {
	id := uuid.New()
	return &SSEClient{
		ID:       id,
		UserID:   userID,
		Channel:  UserChannel(userID),
		Outbound: make(chan SSEMessage, outboundBuffer),
		Logger:   log.With("client_id", id.String()),
		done:     make(chan struct{}),
	}
}

// Done is closed once the client has been replaced or disconnected.
func (c *SSEClient) Done() <-chan struct{} { return c.done }

func (c *SSEClient) close() {
	c.closeOnce.Do(func() { close(c.done) })
}
