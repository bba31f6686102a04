package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger stores a logger tagged with the request id under "logger" in
// the Gin context and echoes the id back in the response.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Header(RequestIDHeader, id)
		c.Set("logger", base.With(
			zap.String("requestId", id),
			zap.String("method", c.Request.Method),
			zap.String("ip", getClientIP(c)),
		))
		c.Next()
	}
}
