package google

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
)

// RateLimitConfig holds the token bucket settings of a RateLimiter.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
	// Backoff is the pause after a 429 without a Retry-After header.
	Backoff time.Duration
}

// CalendarRateLimit paces Calendar API calls. A sync issues one list, a
// handful of deletes and one insert per waste type, so the burst covers a
// typical run.
var CalendarRateLimit = RateLimitConfig{
	RequestsPerSecond: 5.0,
	BurstSize:         10,
	Backoff:           time.Minute,
}

// RateLimiter paces Google API requests with a token bucket and pauses all
// requests after the API reports a rate limit.
type RateLimiter struct {
	limiter *rate.Limiter
	backoff time.Duration
	now     func() time.Time

	mu          sync.Mutex
	pausedUntil time.Time
}

// NewRateLimiter creates a rate limiter. Zero fields of cfg fall back to
// CalendarRateLimit.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = CalendarRateLimit.RequestsPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = CalendarRateLimit.BurstSize
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = CalendarRateLimit.Backoff
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		backoff: cfg.Backoff,
		now:     time.Now,
	}
}

// Wait blocks until the pause (if any) is over and a token is available.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if d := r.pause(); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return r.limiter.Wait(ctx)
}

// Paused returns true if requests are currently held back.
func (r *RateLimiter) Paused() bool {
	return r.pause() > 0
}

// Throttled pauses requests after a rate limit response. The pause honours
// the Retry-After header of err when present and never shortens an existing
// pause.
func (r *RateLimiter) Throttled(err error) {
	d := RetryAfter(err)
	if d <= 0 {
		d = r.backoff
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if until := r.now().Add(d); until.After(r.pausedUntil) {
		r.pausedUntil = until
	}
}

func (r *RateLimiter) pause() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pausedUntil.Sub(r.now())
}

// RetryAfter returns the delay requested by a Google API error's Retry-After
// header, or 0 when there is none. Only the delay-seconds form is supported.
func RetryAfter(err error) time.Duration {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(apiErr.Header.Get("Retry-After"))
	if convErr != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
