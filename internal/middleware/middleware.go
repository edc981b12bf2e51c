package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"command-bridge/pkg/log"
	"command-bridge/pkg/response"
)

// HeaderRequestID carries the request id in and out.
const HeaderRequestID = "X-Request-ID"

// RequestID tags the request context with the caller's X-Request-ID, or a fresh uuid.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AccessLog writes one line per request after it completes.
func (m Middleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		latency := time.Since(start)

		switch {
		case status >= 500:
			m.l.Errorf(ctx, "internal.middleware.AccessLog: %s %s %d %s %s", c.Request.Method, c.Request.URL.Path, status, latency, c.ClientIP())
		case status >= 400:
			m.l.Warnf(ctx, "internal.middleware.AccessLog: %s %s %d %s %s", c.Request.Method, c.Request.URL.Path, status, latency, c.ClientIP())
		default:
			m.l.Infof(ctx, "internal.middleware.AccessLog: %s %s %d %s %s", c.Request.Method, c.Request.URL.Path, status, latency, c.ClientIP())
		}
	}
}

// Recovery turns a handler panic into a 500 with the standard error body.
func (m Middleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		m.l.Errorf(c.Request.Context(), "internal.middleware.Recovery: panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		response.InternalError(c)
		c.Abort()
	})
}
