package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"sync"
	"time"

	"wallfleur-be/internal/auth"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// strictPaths
	limitStrict = rate.Limit(2)
	burstStrict = 5

	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// X-Client-Type: frontend-heavy
	limitFrontend = rate.Limit(20)
	burstFrontend = 40

	// requests carrying the internal service key
	limitInternal = rate.Limit(100)
	burstInternal = 200

	visitorIdle = 3 * time.Minute
)

const (
	tierStrict   = "strict"
	tierGeneral  = "general"
	tierFrontend = "frontend"
	tierInternal = "internal"
)

var strictPaths = map[string]bool{
	"/login":                true,
	"/createOrder":          true,
	"/verifyPayment":        true,
	"/createPayPalOrder":    true,
	"/capturePayPalPayment": true,
}

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per identity and tier.
type Limiter struct {
	internalKey string

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func NewLimiter(internalKey string) *Limiter {
	return &Limiter{
		internalKey: internalKey,
		visitors:    make(map[string]*visitor),
		now:         time.Now,
	}
}

// getVisitor retrieves or creates a rate limiter for the given key.
func (l *Limiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

// Cleanup drops visitors idle for longer than maxIdle and returns how many
// were removed.
func (l *Limiter) Cleanup(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > maxIdle {
			delete(l.visitors, key)
			removed++
		}
	}
	return removed
}

// Run cleans up idle visitors every minute until ctx is done.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup(visitorIdle)
		}
	}
}

// Handler rejects requests over the caller's quota with 429.
func (l *Limiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, burst, tier := l.resolveRateTier(c.Request)

		// e.g. "ip:10.0.0.7:strict"
		key := callerIdentity(c, tier) + ":" + tier
		if !l.getVisitor(key, limit, burst).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": http.StatusText(http.StatusTooManyRequests)})
			return
		}

		c.Next()
	}
}

// callerIdentity ignores X-Device-ID on the strict tier. The limiter runs
// before authentication, so no principal is known yet.
func callerIdentity(c *gin.Context, tier string) string {
	if tier != tierStrict {
		if deviceID := c.GetHeader("X-Device-ID"); deviceID != "" {
			return "device:" + deviceID
		}
	}
	return "ip:" + c.ClientIP()
}

func (l *Limiter) resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if l.internalKey != "" &&
		subtle.ConstantTimeCompare([]byte(r.Header.Get(auth.ServiceAuthHeader)), []byte(l.internalKey)) == 1 {
		return limitInternal, burstInternal, tierInternal
	}

	if strictPaths[r.URL.Path] || r.Header.Get("X-Action") == "auth" {
		return limitStrict, burstStrict, tierStrict
	}

	if r.Header.Get("X-Client-Type") == "frontend-heavy" {
		return limitFrontend, burstFrontend, tierFrontend
	}

	return limitGeneral, burstGeneral, tierGeneral
}
