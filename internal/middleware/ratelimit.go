package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/logger"
	"github.com/gin-gonic/gin"
	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiter limits requests per key with Redis, falling back to in-process
// token buckets when Redis is absent or failing.
type RateLimiter struct {
	limiter  *redis_rate.Limiter
	fallback *localLimiter
	limit    redis_rate.Limit
	keyFunc  func(*gin.Context) string
}

// NewRateLimiter creates a RateLimiter. rdb may be nil.
func NewRateLimiter(rdb *redis.Client, limit redis_rate.Limit, keyFunc func(*gin.Context) string) *RateLimiter {
	if keyFunc == nil {
		keyFunc = KeyByIP
	}
	rl := &RateLimiter{
		fallback: newLocalLimiter(),
		limit:    limit,
		keyFunc:  keyFunc,
	}
	if rdb != nil {
		rl.limiter = redis_rate.NewLimiter(rdb)
	}
	return rl
}

// Handler returns the gin middleware
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.keyFunc(c)
		res := rl.allow(c.Request.Context(), key)

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(rl.limit.Rate))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if res.Allowed == 0 {
			retryAfter := int(res.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			h.Set("Retry-After", strconv.Itoa(retryAfter))
			abort(c, http.StatusTooManyRequests, fmt.Sprintf("Rate limit exceeded. Retry after %d seconds.", retryAfter))
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) *redis_rate.Result {
	if rl.limiter != nil {
		res, err := rl.limiter.Allow(ctx, key, rl.limit)
		if err == nil {
			return res
		}
		logger.Warn("Redis rate limiter failed, using local limiter", "error", err, "key", key)
	}
	return rl.fallback.allow(key, rl.limit)
}

// KeyByIP keys requests by client IP
func KeyByIP(c *gin.Context) string {
	return "ratelimit:ip:" + c.ClientIP()
}

// PerMinute builds a limit of n requests per minute
func PerMinute(n int) redis_rate.Limit {
	return redis_rate.PerMinute(n)
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

type localLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	lastGC   time.Time
}

const entryTTL = 10 * time.Minute

func newLocalLimiter() *localLimiter {
	return &localLimiter{limiters: make(map[string]*limiterEntry), lastGC: time.Now()}
}

func (l *localLimiter) allow(key string, limit redis_rate.Limit) *redis_rate.Result {
	ratePerSec := float64(limit.Rate) / limit.Period.Seconds()
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > entryTTL {
		for k, e := range l.limiters {
			if now.Sub(e.lastAccess) > entryTTL {
				delete(l.limiters, k)
			}
		}
		l.lastGC = now
	}

	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(ratePerSec), limit.Burst)}
		l.limiters[key] = entry
	}
	entry.lastAccess = now

	res := &redis_rate.Result{Limit: limit, RetryAfter: -1}
	if entry.limiter.AllowN(now, 1) {
		res.Allowed = 1
	} else {
		res.RetryAfter = time.Duration(float64(time.Second) / ratePerSec)
	}
	if remaining := int(entry.limiter.TokensAt(now)); remaining > 0 {
		res.Remaining = remaining
	}
	return res
}
