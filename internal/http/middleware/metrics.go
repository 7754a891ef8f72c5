package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/breakbetter-backend/internal/observability"
)

const metricsRoute = "/metrics"

// Metrics records per-route request counts, latency and in-flight requests.
// Scrapes of the metrics endpoint itself are not counted.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.URL.Path == metricsRoute {
			c.Next()
			return
		}
		start := time.Now()
		m.APIInflightInc()
		defer m.APIInflightDec()
		c.Next()
		m.ObserveAPI(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
