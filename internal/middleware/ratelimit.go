package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/viewtube/backend/internal/cache"
)

type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
	redis    *cache.RedisClient
}

// NewRateLimiter builds a per-viewer write limiter. When redis is
// non-nil the token bucket lives there so the limit holds across
// replicas; otherwise an in-memory bucket per viewer is used.
func NewRateLimiter(rps int, redis *cache.RedisClient) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    rps * 2,
		redis:    redis,
	}
}

func (rl *RateLimiter) getLimiter(actor string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[actor]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[actor] = limiter
	}

	return limiter
}

// Cleanup removes old limiters
func (rl *RateLimiter) Cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	go func() {
		for range ticker.C {
			rl.mu.Lock()
			// Simple cleanup - in production, track last access time
			if len(rl.limiters) > 10000 {
				rl.limiters = make(map[string]*rate.Limiter)
			}
			rl.mu.Unlock()
		}
	}()
}

func (rl *RateLimiter) allow(c *gin.Context, actor string) bool {
	if rl.redis != nil {
		ok, err := rl.redis.AllowAction(c.Request.Context(), actor, "write", int(rl.rate), rl.burst)
		if err == nil {
			return ok
		}
		// fall through to the local limiter when Redis is unreachable
	}
	return rl.getLimiter(actor).Allow()
}

// RateLimitMiddleware limits write requests per authenticated viewer.
func RateLimitMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := Viewer(c)
		id, ok := viewer.ID()
		if !ok {
			c.Next()
			return
		}

		if !rl.allow(c, id.Hex()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
