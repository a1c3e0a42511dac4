package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/slotswapper-backend/internal/observability"
)

func TestMetricsSkipsStreamRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.NewMetrics()
	r := gin.New()
	r.Use(Metrics(m, "/api/sse/stream"))
	r.GET("/api/events/mine", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/sse/stream", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/events/mine", "/api/sse/stream", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := m.APIRequestCount("GET", "/api/events/mine", "200"); got != 1 {
		t.Fatalf("events/mine count: want=1 got=%v", got)
	}
	if got := m.APIRequestCount("GET", "/api/sse/stream", "200"); got != 0 {
		t.Fatalf("stream count: want=0 got=%v", got)
	}
	if got := m.APIRequestCount("GET", "unmatched", "404"); got != 1 {
		t.Fatalf("unmatched count: want=1 got=%v", got)
	}
}
