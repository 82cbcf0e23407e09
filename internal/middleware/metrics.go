package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/epeers/tracker/internal/metrics"
)

// Metrics records request count and latency per matched route
func Metrics(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		reg.ObserveHTTP(route, c.Writer.Status(), time.Since(start))
	}
}
