package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/remindr/backend/internal/apierror"
	"github.com/JonnyWalker81/remindr/backend/internal/logger"
	"github.com/JonnyWalker81/remindr/backend/internal/metrics"
)

// RequestIDHeader carries the request correlation ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestLogger assigns every request an ID, attaches a request-scoped
// logger to the request context and logs one line per completed request.
// An incoming X-Request-ID is reused; otherwise a UUID is generated.
func RequestLogger(base logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		ctx := logger.WithRequestID(c.Request.Context(), c.GetHeader(RequestIDHeader))
		ctx = logger.WithClientIP(ctx, c.ClientIP())
		requestID := logger.RequestIDFromContext(ctx)
		ctx = logger.WithLogger(ctx, base.WithContext(ctx))
		c.Request = c.Request.WithContext(ctx)

		c.Set(apierror.RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		metrics.ObserveRequest(c.Request.Method, route, status)

		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.String("route", route),
			logger.Int("status", status),
			logger.Int("bytes", c.Writer.Size()),
			logger.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logger.String("errors", c.Errors.String()))
		}

		log := logger.FromContext(ctx)
		switch {
		case status >= 500:
			log.Error("request completed", fields...)
		case status >= 400:
			log.Warn("request completed", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}
