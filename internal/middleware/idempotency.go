package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JonnyWalker81/remindr/backend/internal/apierror"
	"github.com/JonnyWalker81/remindr/backend/internal/logger"
	"github.com/JonnyWalker81/remindr/backend/internal/repository"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"

	// IdempotencyReplayedHeader marks a response served from the replay store
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
)

// idempotencyBodyWriter wraps gin.ResponseWriter to capture the response body for idempotency caching
type idempotencyBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *idempotencyBodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *idempotencyBodyWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency makes mutating requests that carry an Idempotency-Key header
// replayable. The key must be a UUID. A key already stored for the same route
// replays the stored response; otherwise the request runs and a 2xx response
// is stored. GET and DELETE requests pass through untouched.
func Idempotency(repo repository.IdempotencyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if _, err := uuid.Parse(key); err != nil {
			apierror.WriteProblem(c, apierror.NewInvalidIdempotencyKeyError(apierror.GetRequestID(c), key))
			return
		}

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		route := method + " " + c.FullPath()

		existing, err := repo.Get(ctx, key, route)
		if err != nil {
			// Proceed without replay rather than block a valid request
			log.Error("failed to check idempotency key",
				logger.Err(err),
				logger.String("key", key),
			)
			c.Next()
			return
		}

		if existing != nil {
			log.Info("replaying idempotent response",
				logger.String("key", key),
				logger.String("route", route),
				logger.Int("status_code", existing.StatusCode),
			)

			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(existing.StatusCode, "application/json; charset=utf-8", existing.ResponseBody)
			c.Abort()
			return
		}

		blw := &idempotencyBodyWriter{
			body:           bytes.NewBuffer(nil),
			ResponseWriter: c.Writer,
		}
		c.Writer = blw

		c.Next()

		statusCode := c.Writer.Status()
		if statusCode < 200 || statusCode >= 300 {
			return
		}
		if err := repo.Store(ctx, key, route, blw.body.Bytes(), statusCode); err != nil {
			// The request already succeeded; only replay is lost
			log.Warn("failed to store idempotency key",
				logger.Err(err),
				logger.String("key", key),
			)
			return
		}
		log.Debug("stored idempotency key",
			logger.String("key", key),
			logger.String("route", route),
			logger.Int("status_code", statusCode),
		)
	}
}
