package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tutoria-escolar/tutoria-api/internal/service"
)

// Metrics observes every API request on the metrics service. The scrape
// endpoint itself is excluded so Prometheus polling does not inflate the
// request counters.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
