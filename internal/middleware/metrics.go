package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/educore-id/educore-api/internal/service"
)

// Metrics records latency and status for every request. The route
// template is used as the path label so IDs do not blow up cardinality;
// unmatched routes fall back to the raw path.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
