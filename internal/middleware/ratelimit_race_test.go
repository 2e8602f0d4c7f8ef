package middleware

import (
	"sync"
	"testing"
	"time"
)

// TestRateLimiterConcurrentAccess verifies the rate limiter is safe under concurrent access.
// Run with: go test -race -count=1 ./internal/middleware/ -run TestRateLimiterConcurrentAccess
func TestRateLimiterConcurrentAccess(t *testing.T) {
	limiter := NewRateLimiter(100, 100, time.Minute, "test-concurrent")
	defer limiter.Stop()

	var wg sync.WaitGroup
	// 50 goroutines each making 20 requests with varying IPs
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(goroutineID int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				ip := "192.168.1.1"
				if j%3 == 0 {
					ip = "10.0.0." + string(rune('0'+goroutineID%10))
				}
				_ = limiter.isAllowed(ip)
			}
		}(i)
	}
	wg.Wait()
}

// TestRateLimiterConcurrentWithCleanup verifies no race between request handling and cleanup.
func TestRateLimiterConcurrentWithCleanup(t *testing.T) {
	// Short idle TTL so cleanup runs during the test
	limiter := NewRateLimiter(5, 5, 20*time.Millisecond, "test-cleanup-race")
	defer limiter.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				ip := "10.0.0." + string(rune('0'+id%10))
				limiter.isAllowed(ip)
				if j%10 == 0 {
					time.Sleep(time.Millisecond)
				}
			}
		}(i)
	}
	wg.Wait()
}
