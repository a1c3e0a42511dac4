package app

import (
	"fmt"
	"strings"

	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
	"github.com/yungbote/slotswapper-backend/internal/realtime/bus"
)

type Clients struct {
	SSEBus bus.Bus
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	var sseBus bus.Bus
	if strings.TrimSpace(cfg.Redis.Addr) != "" {
		b, err := bus.NewRedisBus(log, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis SSE bus: %w", err)
		}
		sseBus = b
	}
	return Clients{SSEBus: sseBus}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.SSEBus != nil {
		_ = c.SSEBus.Close()
	}
}
