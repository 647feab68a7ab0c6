package middleware

import (
	"WeTube/internal/metrics"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics 按路由模板（/api/videos/:id 而不是具体ID）统计请求数和耗时
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
