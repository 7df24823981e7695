// Package middleware holds gin middleware for the HTTP facade, grounded on
// olyamironova-exchange-engine/internal/middleware.RateLimiter.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter enforces a minimum spacing between requests from the same
// remote address, reaped periodically so the client map does not grow
// unbounded under many distinct callers. It does not require a
// client-supplied identity header: the engine's order identity is
// server-assigned, so there is no client ID to key on.
type RateLimiter struct {
	mu      sync.Mutex
	last    map[string]time.Time
	minGap  time.Duration
}

func NewRateLimiter(minGap time.Duration) *RateLimiter {
	r := &RateLimiter{
		last:   make(map[string]time.Time),
		minGap: minGap,
	}
	go r.reap()
	return r
}

func (r *RateLimiter) reap() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		cutoff := time.Now().Add(-time.Minute)
		r.mu.Lock()
		for k, t := range r.last {
			if t.Before(cutoff) {
				delete(r.last, k)
			}
		}
		r.mu.Unlock()
	}
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		now := time.Now()

		r.mu.Lock()
		last, seen := r.last[key]
		if seen && now.Sub(last) < r.minGap {
			r.mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		r.last[key] = now
		r.mu.Unlock()
		c.Next()
	}
}
