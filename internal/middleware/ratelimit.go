package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter manages per-client token buckets for API requests
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(rps int, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// getLimiter returns a rate limiter for a specific key
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[key]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Double-check after acquiring write lock
	limiter, exists = rl.limiters[key]
	if exists {
		return limiter
	}

	limiter = rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[key] = limiter

	return limiter
}

// RateLimit middleware limits requests per user or IP
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		var key string

		if exists {
			key = fmt.Sprintf("user:%s", userID)
		} else {
			key = fmt.Sprintf("ip:%s", c.ClientIP())
		}

		limiter := rl.getLimiter(key)
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// QuotaStore is the interface to the shared daily-quota counters.
type QuotaStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error)
}

// DailyQuota middleware enforces a per-client daily request budget using
// a shared counter store, so the budget holds across replicas.
func DailyQuota(store QuotaStore, limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		var key string
		if exists {
			key = fmt.Sprintf("daily:user:%s", userID)
		} else {
			key = fmt.Sprintf("daily:ip:%s", c.ClientIP())
		}

		ok, err := store.Allow(c.Request.Context(), key, limit, 24*time.Hour)
		if err != nil {
			// A broken counter store must not take the API down.
			c.Next()
			return
		}

		if !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Daily quota exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
