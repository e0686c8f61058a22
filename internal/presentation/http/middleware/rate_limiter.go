package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// RateLimiterConfig tunes the per-tenant token buckets.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	CleanupInterval   time.Duration
	EntryTTL          time.Duration
}

type tenantBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TenantRateLimiter rate-limits each tenant independently so one busy shop
// cannot starve the others.
type TenantRateLimiter struct {
	mu      sync.Mutex
	buckets map[uuid.UUID]*tenantBucket
	cfg     RateLimiterConfig
}

// NewTenantRateLimiter creates the limiter and starts its eviction loop.
func NewTenantRateLimiter(cfg RateLimiterConfig) *TenantRateLimiter {
	rl := &TenantRateLimiter{
		buckets: make(map[uuid.UUID]*tenantBucket),
		cfg:     cfg,
	}
	go rl.evictLoop()
	return rl
}

func (rl *TenantRateLimiter) bucket(tenantID uuid.UUID) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[tenantID]
	if !ok {
		b = &tenantBucket{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RequestsPerSecond), rl.cfg.BurstSize)}
		rl.buckets[tenantID] = b
	}
	b.lastSeen = time.Now()
	return b.limiter
}

func (rl *TenantRateLimiter) evictLoop() {
	ticker := time.NewTicker(rl.cfg.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-rl.cfg.EntryTTL)
		rl.mu.Lock()
		for id, b := range rl.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(rl.buckets, id)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware enforces the tenant's bucket. Requests without a resolved tenant
// pass through; the public routes never reach this chain anyway.
func (rl *TenantRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := GetTenantID(c)
		if tenantID == uuid.Nil {
			c.Next()
			return
		}

		limiter := rl.bucket(tenantID)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.cfg.BurstSize))

		if !limiter.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Rate limit exceeded. Please try again later.",
				"error":   "too_many_requests",
			})
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		c.Next()
	}
}
