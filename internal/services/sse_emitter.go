package services

import (
	"context"

	"github.com/yungbote/slotswapper-backend/internal/realtime"
	"github.com/yungbote/slotswapper-backend/internal/realtime/bus"
)

// SSEEmitter hands a message to the notification channel. A recipient that is
// not connected is not an error.
type SSEEmitter interface {
	Emit(ctx context.Context, msg realtime.SSEMessage) error
}

type HubEmitter struct{ Hub *realtime.SSEHub }

func (e *HubEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) error {
	e.Hub.Broadcast(msg)
	return nil
}

// RedisEmitter publishes to the bus; every instance's forwarder delivers to its local hub.
type RedisEmitter struct{ Bus bus.Bus }

func (e *RedisEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) error {
	return e.Bus.Publish(ctx, msg)
}
