package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/humaira228/DeenOasis/pkg/metrics"
)

// Metrics Prometheus指标中间件
// 路径标签使用路由模板(c.FullPath)而非原始URL,避免高基数标签
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics.HTTPRequestsTotal == nil {
			c.Next()
			return
		}

		start := time.Now()
		metrics.HTTPRequestsInProgress.Inc()

		c.Next()

		metrics.HTTPRequestsInProgress.Dec()

		path := c.FullPath()
		if path == "" {
			// 未命中任何路由(404)
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}
