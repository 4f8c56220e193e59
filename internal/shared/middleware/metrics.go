package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"newsroom-backend/pkg/metrics"
)

// Metrics ghi nhận request count, duration và in-flight gauge.
// Dùng FullPath() (route template) thay vì raw URL để tránh
// cardinality explosion với path params.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		collector.RequestStarted()

		c.Next()

		collector.RequestFinished()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		collector.RecordRequest(
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
