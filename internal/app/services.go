package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/slotswapper-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/slotswapper-backend/internal/domain/aggregates"
	"github.com/yungbote/slotswapper-backend/internal/observability"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
	"github.com/yungbote/slotswapper-backend/internal/realtime"
	"github.com/yungbote/slotswapper-backend/internal/services"
)

type Aggregates struct {
	Slot domainagg.SlotAggregate
	Swap domainagg.SwapAggregate
}

type Services struct {
	Identity services.IdentityProvider
	User     services.UserService
	Slot     services.SlotService
	Swap     services.SwapService
	Notifier services.SwapNotifier
}

func wireAggregates(db *gorm.DB, log *logger.Logger, metrics *observability.Metrics, reposet Repos) Aggregates {
	log.Info("Wiring aggregates...")
	base := aggregates.BaseDeps{
		DB:       db,
		Log:      log,
		Runner:   aggregates.NewGormTxRunner(db),
		Hooks:    aggregates.MultiHooks(aggregates.NewLogHooks(log), aggregates.NewObservabilityHooks(metrics)),
		CASGuard: aggregates.NewCASGuard(db),
	}
	return Aggregates{
		Slot: aggregates.NewSlotAggregate(aggregates.SlotAggregateDeps{Base: base, Events: reposet.Event}),
		Swap: aggregates.NewSwapAggregate(aggregates.SwapAggregateDeps{Base: base, Events: reposet.Event, Swaps: reposet.SwapRequest}),
	}
}

// emitterFor publishes through Redis when configured so every instance's hub
// sees the message; otherwise it writes to the local hub.
func emitterFor(clients Clients, hub *realtime.SSEHub) services.SSEEmitter {
	if clients.SSEBus != nil {
		return &services.RedisEmitter{Bus: clients.SSEBus}
	}
	return &services.HubEmitter{Hub: hub}
}

func wireServices(log *logger.Logger, cfg Config, metrics *observability.Metrics, reposet Repos, aggs Aggregates, clients Clients, hub *realtime.SSEHub) Services {
	log.Info("Wiring services...")
	notifier := services.NewSwapNotifier(log, emitterFor(clients, hub), metrics)
	return Services{
		Identity: services.NewIdentityProvider(log, cfg.JWTSecretKey, cfg.JWTIssuer),
		User:     services.NewUserService(log, reposet.User),
		Slot:     services.NewSlotService(log, aggs.Slot, reposet.Event),
		Swap: services.NewSwapService(services.SwapServiceDeps{
			Log:           log,
			Swaps:         aggs.Swap,
			Requests:      reposet.SwapRequest,
			Notifier:      notifier,
			NotifyTimeout: cfg.NotifyTimeout,
		}),
		Notifier: notifier,
	}
}
