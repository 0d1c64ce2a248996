package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/humaira228/DeenOasis/pkg/logger"
)

// RequestLogger 请求日志中间件
// 设计说明:
// 1. 每个请求分配request_id,写入响应头便于排障时关联日志
// 2. 记录方法、路径、状态码、耗时、客户端IP
// 3. 5xx记error级别,4xx记warn级别,其余info
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()

		event := logger.Get().Info()
		switch {
		case status >= 500:
			event = logger.Get().Error()
		case status >= 400:
			event = logger.Get().Warn()
		}

		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("elapsed", elapsed).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}
