package httpserver

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	maxLimiterEntries = 10000
	limiterIdleTTL    = 10 * time.Minute
)

// IPRateLimiter manages rate limiters per client IP.
// It expects middleware.RealIP to have normalised RemoteAddr.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewIPRateLimiter creates a limiter allowing r requests per second with
// bursts of b per IP.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     r,
		burst:    b,
		now:      time.Now,
	}
}

// Allow reports whether a request from ip may proceed.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.getLimiter(ip).AllowN(l.now(), 1)
}

func (l *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, exists := l.limiters[ip]
	if !exists {
		if len(l.limiters) >= maxLimiterEntries {
			l.evictIdle(now)
		}
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastAccess = now
	return entry.limiter
}

// evictIdle drops idle entries, or the oldest one if none are idle
// (caller must hold lock).
func (l *IPRateLimiter) evictIdle(now time.Time) {
	var oldestIP string
	var oldestTime time.Time

	for ip, entry := range l.limiters {
		if now.Sub(entry.lastAccess) > limiterIdleTTL {
			delete(l.limiters, ip)
			continue
		}
		if oldestIP == "" || entry.lastAccess.Before(oldestTime) {
			oldestIP = ip
			oldestTime = entry.lastAccess
		}
	}

	if len(l.limiters) >= maxLimiterEntries && oldestIP != "" {
		delete(l.limiters, oldestIP)
	}
}

// Middleware creates HTTP middleware for rate limiting.
func (l *IPRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientIP(r)) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
