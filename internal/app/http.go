package app

import (
	"gorm.io/gorm"

	apphttp "github.com/yungbote/slotswapper-backend/internal/http"
	httpH "github.com/yungbote/slotswapper-backend/internal/http/handlers"
	httpMW "github.com/yungbote/slotswapper-backend/internal/http/middleware"
	"github.com/yungbote/slotswapper-backend/internal/observability"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
	"github.com/yungbote/slotswapper-backend/internal/realtime"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health   *httpH.HealthHandler
	User     *httpH.UserHandler
	Event    *httpH.EventHandler
	Swap     *httpH.SwapHandler
	Realtime *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, cfg Config, db *gorm.DB, services Services, sseHub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(httpH.HealthDeps{
			Service: cfg.Otel.ServiceName,
			Version: cfg.Otel.Version,
			DB:      db,
			Hub:     sseHub,
		}),
		User:     httpH.NewUserHandler(services.User),
		Event:    httpH.NewEventHandler(services.Slot),
		Swap:     httpH.NewSwapHandler(services.Swap),
		Realtime: httpH.NewRealtimeHandler(log, sseHub),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Identity),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *apphttp.Server {
	tracing := ""
	if cfg.Otel.Enabled {
		tracing = cfg.Otel.ServiceName
	}
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:             log,
		Metrics:         metrics,
		TracingService:  tracing,
		CORSOrigins:     cfg.CORSOrigins,
		AuthMiddleware:  middleware.Auth,
		HealthHandler:   handlers.Health,
		UserHandler:     handlers.User,
		EventHandler:    handlers.Event,
		SwapHandler:     handlers.Swap,
		RealtimeHandler: handlers.Realtime,
	})
}
