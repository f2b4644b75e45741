// Package ratelimit throttles unauthenticated endpoints per client address.
package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/nekogravitycat/garage-booking-backend/internal/metrics"
)

// idleTTL is how long an unused client limiter is kept.
const idleTTL = time.Hour

type entry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter is a token bucket per client key.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	rate     rate.Limit
	burst    int
	window   time.Duration
	stop     chan struct{}
	once     sync.Once
	now      func() time.Time
}

// New allows reqsPerWindow requests per window for each client, refilled
// evenly across the window. A non-positive reqsPerWindow disables limiting.
func New(reqsPerWindow int, window time.Duration) *Limiter {
	l := &Limiter{
		limiters: make(map[string]*entry),
		burst:    reqsPerWindow,
		window:   window,
		stop:     make(chan struct{}),
		now:      time.Now,
	}
	if reqsPerWindow > 0 {
		l.rate = rate.Every(window / time.Duration(reqsPerWindow))
	}
	return l
}

// Allow reports whether a request from key may proceed.
func (l *Limiter) Allow(key string) bool {
	if l.burst <= 0 {
		return true
	}

	l.mu.Lock()
	e, ok := l.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = e
	}
	e.lastAccess = l.now()
	limiter := e.limiter
	l.mu.Unlock()

	return limiter.Allow()
}

// StartCleanup evicts idle limiters every interval until Stop is called.
func (l *Limiter) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.cleanup()
			case <-l.stop:
				return
			}
		}
	}()
}

func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idleTTL)
	for key, e := range l.limiters {
		if e.lastAccess.Before(cutoff) {
			delete(l.limiters, key)
		}
	}
}

// Stop ends the cleanup goroutine.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// Middleware rejects requests over the limit with 429 and a Retry-After hint.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.Allow(c.ClientIP()) {
			c.Next()
			return
		}

		metrics.RateLimitRejections.WithLabelValues(c.FullPath()).Inc()
		retryAfter := int((l.window / time.Duration(l.burst)).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	}
}
