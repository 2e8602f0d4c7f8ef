package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/JonnyWalker81/remindr/backend/internal/apierror"
	"github.com/JonnyWalker81/remindr/backend/internal/logger"
)

// RateLimiter provides token-bucket rate limiting per client IP
type RateLimiter struct {
	clients map[string]*client
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	name    string // identifier for logging

	stop     chan struct{}
	stopOnce sync.Once
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter allowing rps requests per second per
// IP with bursts of up to burst requests. Idle clients are forgotten after
// idleTTL. Call Stop to end the cleanup goroutine.
func NewRateLimiter(rps float64, burst int, idleTTL time.Duration, name string) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		name:    name,
		stop:    make(chan struct{}),
	}

	go rl.cleanup()

	logger.Default().Debug("rate limiter initialized",
		logger.String("name", name),
		logger.Float64("rps", rps),
		logger.Int("burst", burst),
	)

	return rl
}

// Stop ends the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// cleanup removes idle clients periodically
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
		}

		rl.mu.Lock()
		now := time.Now()
		cleaned := 0
		for ip, c := range rl.clients {
			if now.Sub(c.lastSeen) > rl.idleTTL {
				delete(rl.clients, ip)
				cleaned++
			}
		}
		remaining := len(rl.clients)
		rl.mu.Unlock()

		if cleaned > 0 {
			logger.Default().Debug("rate limiter cleanup completed",
				logger.String("name", rl.name),
				logger.Int("cleaned", cleaned),
				logger.Int("remaining", remaining),
			)
		}
	}
}

// isAllowed consumes a token for ip if one is available
func (rl *RateLimiter) isAllowed(ip string) bool {
	rl.mu.Lock()
	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = time.Now()
	rl.mu.Unlock()

	return c.limiter.Allow()
}

// retryAfter is the whole number of seconds until one token refills
func (rl *RateLimiter) retryAfter() int {
	if rl.limit <= 0 {
		return 60
	}
	return int(math.Max(1, math.Ceil(1/float64(rl.limit))))
}

// RateLimit returns a middleware handler that limits requests per IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !limiter.isAllowed(ip) {
			logger.FromContext(c.Request.Context()).Warn("rate limit exceeded",
				logger.String("limiter", limiter.name),
				logger.String("client_ip", ip),
				logger.Float64("rps", float64(limiter.limit)),
				logger.Int("burst", limiter.burst),
			)

			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.burst))
			c.Header("X-RateLimit-Remaining", "0")
			apierror.WriteProblem(c, apierror.NewRateLimitError(apierror.GetRequestID(c), limiter.retryAfter()))
			return
		}

		c.Next()
	}
}
