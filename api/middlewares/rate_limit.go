package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitor holds the rate limiter and the last time we saw this IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorSet struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	every    time.Duration
	burst    int
}

func newVisitorSet(every time.Duration, burst int) *visitorSet {
	return &visitorSet{visitors: make(map[string]*visitor), every: every, burst: burst}
}

func (s *visitorSet) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(s.every), s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (s *visitorSet) sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for ip, v := range s.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(s.visitors, ip)
			n++
		}
	}
	return n
}

func (s *visitorSet) reset() {
	s.mu.Lock()
	s.visitors = make(map[string]*visitor)
	s.mu.Unlock()
}

var (
	// General API traffic: 1 request/second average, burst of 100.
	apiVisitors = newVisitorSet(time.Second, 100)

	// Login and password reset: 1 request every 10 seconds, burst of 5.
	authVisitors = newVisitorSet(10*time.Second, 5)
)

func limit(set *visitorSet, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !set.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message})
			return
		}
		c.Next()
	}
}

// RateLimitMiddleware applies a per-IP rate limit for all routes.
func RateLimitMiddleware() gin.HandlerFunc {
	return limit(apiVisitors, "Too many requests. Please slow down.")
}

// LoginRateLimitMiddleware applies a stricter per-IP rate limit for auth routes.
func LoginRateLimitMiddleware() gin.HandlerFunc {
	return limit(authVisitors, "Too many authentication attempts. Please wait and try again.")
}

// SweepVisitors forgets IPs not seen for idle and reports how many.
func SweepVisitors(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	return apiVisitors.sweep(cutoff) + authVisitors.sweep(cutoff)
}
