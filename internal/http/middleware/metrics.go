package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/slotswapper-backend/internal/observability"
)

// Metrics records request counts and latency per matched route. Routes listed in
// streamRoutes hold a connection open for the client's lifetime and are left to the
// SSE client gauge instead.
func Metrics(m *observability.Metrics, streamRoutes ...string) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	streams := make(map[string]struct{}, len(streamRoutes))
	for _, r := range streamRoutes {
		streams[r] = struct{}{}
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if _, ok := streams[route]; ok {
			c.Next()
			return
		}
		if route == "" {
			route = "unmatched"
		}

		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
