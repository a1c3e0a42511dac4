package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/slotswapper-backend/internal/realtime"
)

const healthPingTimeout = 2 * time.Second

type HealthDeps struct {
	Service string
	Version string
	DB      *gorm.DB
	Hub     *realtime.SSEHub
}

type HealthHandler struct {
	deps HealthDeps
}

func NewHealthHandler(deps HealthDeps) *HealthHandler {
	if deps.Service == "" {
		deps.Service = "slotswapper-backend"
	}
	return &HealthHandler{deps: deps}
}

// HealthCheck reports 503 when the record store does not answer a ping.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":  "ok",
		"service": h.deps.Service,
		"version": h.deps.Version,
	}
	if h.deps.Hub != nil {
		body["sse_clients"] = h.deps.Hub.Count()
	}
	if err := h.pingDB(c.Request.Context()); err != nil {
		body["status"] = "degraded"
		body["database"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	if h.deps.DB == nil {
		return nil
	}
	sqlDB, err := h.deps.DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
