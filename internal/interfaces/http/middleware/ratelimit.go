package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is an in-memory fixed-window limiter keyed by client IP. One
// instance guards the whole API; image-heavy publish calls count the same as
// cheap reads.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*window
	limit    int
	interval time.Duration
}

type window struct {
	remaining int
	resetAt   time.Time
}

// NewRateLimiter creates a rate limiter allowing limit requests per interval
// and starts its background cleanup.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*window),
		limit:    limit,
		interval: interval,
	}
	go rl.evictStale()
	return rl
}

// evictStale drops visitors whose window lapsed more than an interval ago.
func (rl *RateLimiter) evictStale() {
	ticker := time.NewTicker(rl.interval * 2)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, w := range rl.visitors {
			if now.Sub(w.resetAt) > rl.interval {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow reports whether a request from key fits in the current window and
// returns the remaining allowance and the window reset time.
func (rl *RateLimiter) Allow(key string) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.visitors[key]
	if !ok || now.After(w.resetAt) {
		w = &window{remaining: rl.limit - 1, resetAt: now.Add(rl.interval)}
		rl.visitors[key] = w
		return true, w.remaining, w.resetAt
	}

	if w.remaining > 0 {
		w.remaining--
		return true, w.remaining, w.resetAt
	}
	return false, 0, w.resetAt
}

// RateLimit returns a middleware enforcing the limiter per client IP. A
// rejected request gets a Retry-After hint for the window reset.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, resetAt := limiter.Allow(c.ClientIP())
		if !allowed {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_RATE_LIMITED",
					"message": "Too many requests. Please try again later.",
				},
			})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}
