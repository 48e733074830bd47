package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"checkout-gateway/logging"
	"checkout-gateway/models"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore holds one token bucket per client IP. Buckets idle for
// longer than idleTTL are refilled anyway, so they are dropped on the next
// sweep.
type limiterStore struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	every     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterStore(perMinute, burst int) *limiterStore {
	if perMinute <= 0 {
		perMinute = 120
	}
	if burst <= 0 {
		burst = 1
	}
	interval := time.Minute / time.Duration(perMinute)
	idleTTL := interval * time.Duration(burst)
	if idleTTL < time.Minute {
		idleTTL = time.Minute
	}
	return &limiterStore{
		visitors: make(map[string]*visitor),
		every:    rate.Every(interval),
		burst:    burst,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.idleTTL {
		s.sweep(now)
	}

	v, ok := s.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.every, s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep drops idle visitors. Caller holds mu.
func (s *limiterStore) sweep(now time.Time) {
	for ip, v := range s.visitors {
		if now.Sub(v.lastSeen) >= s.idleTTL {
			delete(s.visitors, ip)
		}
	}
	s.lastSweep = now
}

func (s *limiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// RateLimiter limits requests per client IP. The IP comes from gin's
// ClientIP, so forwarding headers only count behind the engine's trusted
// proxies.
func RateLimiter(perMinute, burst int) gin.HandlerFunc {
	return rateLimiter(newLimiterStore(perMinute, burst))
}

func rateLimiter(store *limiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.get(ip).Allow() {
			logging.FromContext(c.Request.Context()).Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Success: false,
				Message: "Too many requests, please try again later",
				Code:    "rateLimited",
			})
			return
		}
		c.Next()
	}
}
