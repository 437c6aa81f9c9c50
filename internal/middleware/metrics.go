package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"finsight/internal/metrics"
)

// Metrics returns a Gin middleware that records request counts and latency
// on the collector. Requests are labelled by route template so path
// parameters do not create new series; unmatched routes share one label.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
