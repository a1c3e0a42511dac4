package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/slotswapper-backend/internal/data/db"
	apphttp "github.com/yungbote/slotswapper-backend/internal/http"
	"github.com/yungbote/slotswapper-backend/internal/observability"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
	"github.com/yungbote/slotswapper-backend/internal/realtime"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Metrics  *observability.Metrics
	Repos    Repos
	Services Services
	Clients  Clients
	SSEHub   *realtime.SSEHub
	Server   *apphttp.Server

	store        *db.Service
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg := LoadConfig()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if cfg.JWTSecretKey == "" {
		log.Warn("JWT_SECRET_KEY is empty; every authenticated request will be rejected")
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)
	metrics := observability.Init(cfg.MetricsEnabled)

	store, err := db.Open(cfg.DB, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrateAll(store.DB()); err != nil {
			_ = store.Close()
			log.Sync()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		if err := db.EnsureSchedulingIndexes(store.DB()); err != nil {
			_ = store.Close()
			log.Sync()
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
	}
	theDB := store.DB()

	ssehub := realtime.NewSSEHub(log,
		realtime.WithHeartbeat(cfg.SSEHeartbeat),
		realtime.WithClientCountObserver(metrics.SetSSEClients),
	)

	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = store.Close()
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	aggs := wireAggregates(theDB, log, metrics, reposet)
	serviceset := wireServices(log, cfg, metrics, reposet, aggs, clients, ssehub)
	handlerset := wireHandlers(log, cfg, theDB, serviceset, ssehub)
	middleware := wireMiddleware(log, serviceset)
	server := wireServer(log, cfg, metrics, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Metrics:      metrics,
		Repos:        reposet,
		Services:     serviceset,
		Clients:      clients,
		SSEHub:       ssehub,
		Server:       server,
		store:        store,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP and forwards bus messages until ctx ends, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	if a.Clients.SSEBus != nil {
		if err := a.Clients.SSEBus.StartForwarder(gctx, func(m realtime.SSEMessage) {
			a.SSEHub.Broadcast(m)
		}); err != nil {
			return fmt.Errorf("start SSE forwarder: %w", err)
		}
	}
	a.Metrics.StartServer(gctx, a.Log, a.Cfg.MetricsAddr)

	addr := ":" + a.Cfg.Port
	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", addr)
		return a.Server.Run(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// Open streams never finish on their own.
		a.SSEHub.CloseAll()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			a.Log.Warn("HTTP shutdown", "error", err)
		}
		if err := a.Services.Swap.Wait(shutdownCtx); err != nil {
			a.Log.Warn("Pending notifications abandoned", "error", err)
		}
		return nil
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Log.Warn("Closing database", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("Tracer shutdown", "error", err)
		}
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
