package middleware

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	apierrors "github.com/briefmate/briefmate/internal/errors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// DefaultLimiterIdleTTL is how long a key may go unused before its bucket is dropped.
const DefaultLimiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// RateLimiter implements token bucket rate limiting per client IP.
// Buckets idle for longer than idleTTL are evicted so the key set stays bounded.
type RateLimiter struct {
	limiters  sync.Map // key -> *limiterEntry
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	nextSweep atomic.Int64
	now       func() time.Time
}

// NewRateLimiter creates a new rate limiter
// requestsPerSecond: number of requests allowed per second
// burst: maximum burst size
func NewRateLimiter(requestsPerSecond int, burst int) *RateLimiter {
	rl := &RateLimiter{
		rate:    rate.Limit(requestsPerSecond),
		burst:   burst,
		idleTTL: DefaultLimiterIdleTTL,
		now:     time.Now,
	}
	rl.nextSweep.Store(rl.now().Add(rl.idleTTL).UnixNano())
	return rl
}

// getLimiter gets or creates a rate limiter for the given key
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	now := rl.now()
	rl.maybeSweep(now)

	value, ok := rl.limiters.Load(key)
	if !ok {
		value, _ = rl.limiters.LoadOrStore(key, &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)})
	}
	entry := value.(*limiterEntry)
	entry.lastSeen.Store(now.UnixNano())
	return entry.limiter
}

// maybeSweep runs Sweep at most once per idleTTL; concurrent callers skip it.
func (rl *RateLimiter) maybeSweep(now time.Time) {
	next := rl.nextSweep.Load()
	if now.UnixNano() < next {
		return
	}
	if !rl.nextSweep.CompareAndSwap(next, now.Add(rl.idleTTL).UnixNano()) {
		return
	}
	rl.Sweep(now)
}

// Sweep drops every bucket not used within idleTTL of now and returns how many
// were removed. A dropped key starts again with a full bucket.
func (rl *RateLimiter) Sweep(now time.Time) int {
	cutoff := now.Add(-rl.idleTTL).UnixNano()
	removed := 0
	rl.limiters.Range(func(key, value any) bool {
		if value.(*limiterEntry).lastSeen.Load() < cutoff {
			rl.limiters.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// Allow checks if a request should be allowed for the given key
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Middleware limits requests by client IP
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getLimiter("ip:" + c.ClientIP())
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))

		if !limiter.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			apierrors.TooManyRequests(c)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		c.Next()
	}
}
