package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// attaches a request id and a request-scoped logger, then logs the finished request
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// only well-formed ids are propagated
		requestID := uuid.NewString()
		if id, err := uuid.Parse(c.GetHeader(RequestIDHeader)); err == nil {
			requestID = id.String()
		}

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		reqLogger := defaultLogger.With("request_id", requestID)
		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), reqLogger))

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		switch {
		case status >= 500:
			reqLogger.Error("request failed", args...)
		case status >= 400:
			reqLogger.Warn("request rejected", args...)
		default:
			reqLogger.Info("request completed", args...)
		}
	}
}
