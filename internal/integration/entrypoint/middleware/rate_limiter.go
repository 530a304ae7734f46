// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/life-index/backend/internal/domain/error"
	"github.com/life-index/backend/internal/integration/entrypoint/dto"
)

// sweepThreshold is the number of tracked clients above which idle ones are
// dropped on the next request.
const sweepThreshold = 1024

// RateLimiter limits insight requests per client IP over a sliding window.
// The insight endpoints call a paid external service.
type RateLimiter struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	limit   int
	window  time.Duration
	nowFunc func() time.Time
}

// NewRateLimiterWithConfig creates a rate limiter allowing limit requests per
// window. A limit of zero or less disables limiting.
func NewRateLimiterWithConfig(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		hits:    make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		nowFunc: time.Now,
	}
}

// Middleware returns a Gin handler that rejects clients over the limit with
// 429 and a Retry-After header.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		wait, ok := rl.take(clientIP)
		if !ok {
			slog.Warn("Insight rate limit exceeded", "client_ip", clientIP, "path", c.FullPath())
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: domainerror.ErrInsightRateLimited.Error(),
				Code:  string(domainerror.ErrCodeInsightRateLimited),
			})
			return
		}

		c.Next()
	}
}

// take records a request for key when it fits in the window. Otherwise it
// returns how long until the oldest request leaves the window.
func (rl *RateLimiter) take(key string) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.nowFunc()
	if len(rl.hits) > sweepThreshold {
		rl.sweep(now)
	}

	recent := rl.recent(rl.hits[key], now)
	if len(recent) >= rl.limit {
		rl.hits[key] = recent
		return recent[0].Add(rl.window).Sub(now), false
	}

	rl.hits[key] = append(recent, now)
	return 0, true
}

// recent drops the timestamps that fell out of the window.
func (rl *RateLimiter) recent(hits []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-rl.window)
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}

func (rl *RateLimiter) sweep(now time.Time) {
	for key, hits := range rl.hits {
		if recent := rl.recent(hits, now); len(recent) == 0 {
			delete(rl.hits, key)
		} else {
			rl.hits[key] = recent
		}
	}
}

// Reset forgets every client.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.hits = make(map[string][]time.Time)
}

// Cleanup drops clients with no request inside the window.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.sweep(rl.nowFunc())
}
