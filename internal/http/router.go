package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/slotswapper-backend/internal/http/handlers"
	httpMW "github.com/yungbote/slotswapper-backend/internal/http/middleware"
	"github.com/yungbote/slotswapper-backend/internal/observability"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	// TracingService enables otelgin spans when non-empty.
	TracingService string
	CORSOrigins    []string

	AuthMiddleware  *httpMW.AuthMiddleware
	HealthHandler   *httpH.HealthHandler
	UserHandler     *httpH.UserHandler
	EventHandler    *httpH.EventHandler
	SwapHandler     *httpH.SwapHandler
	RealtimeHandler *httpH.RealtimeHandler
}

// StreamRoute is the long-lived notification stream.
const StreamRoute = "/api/sse/stream"

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, StreamRoute))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Realtime (SSE)
	if cfg.RealtimeHandler != nil {
		handlers := []gin.HandlerFunc{cfg.RealtimeHandler.SSEStream}
		if cfg.AuthMiddleware != nil {
			handlers = append([]gin.HandlerFunc{cfg.AuthMiddleware.RequireStreamAuth()}, handlers...)
		}
		r.GET(StreamRoute, handlers...)
	}

	protected := r.Group("/api")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		// Events
		if cfg.EventHandler != nil {
			protected.POST("/events", cfg.EventHandler.CreateEvent)
			protected.GET("/events/mine", cfg.EventHandler.ListMyEvents)
			protected.GET("/events/:id", cfg.EventHandler.GetEvent)
			protected.PATCH("/events/:id/status", cfg.EventHandler.SetEventStatus)
			protected.DELETE("/events/:id", cfg.EventHandler.DeleteEvent)
			protected.GET("/swappable-slots", cfg.EventHandler.ListSwappable)
		}

		// Swap requests
		if cfg.SwapHandler != nil {
			protected.POST("/swap-requests", cfg.SwapHandler.CreateSwap)
			protected.GET("/swap-requests/incoming", cfg.SwapHandler.ListIncoming)
			protected.GET("/swap-requests/outgoing", cfg.SwapHandler.ListOutgoing)
			protected.GET("/swap-requests/:id", cfg.SwapHandler.GetSwap)
			protected.POST("/swap-requests/:id/response", cfg.SwapHandler.RespondSwap)
		}
	}

	return r
}
