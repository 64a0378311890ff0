package articlesapi

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter rate-limits requests per IP address over a sliding window.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	stop   chan struct{}
	once   sync.Once
}

// NewRateLimiter creates a RateLimiter that allows max requests per window.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	l := &RateLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		stop:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *RateLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for ip, hits := range l.hits {
			kept := prune(hits, cutoff)
			if len(kept) == 0 {
				delete(l.hits, ip)
			} else {
				l.hits[ip] = kept
			}
		}
		l.mu.Unlock()
	}
}

// Stop ends the background cleanup.
func (l *RateLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// Allow reports whether ip is under the limit and records the request.
func (l *RateLimiter) Allow(ip string) bool {
	cutoff := time.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := prune(l.hits[ip], cutoff)
	if len(kept) >= l.max {
		l.hits[ip] = kept
		return false
	}
	l.hits[ip] = append(kept, time.Now())
	return true
}

// Middleware rejects requests over the limit with 429.
func (l *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				c.Response().Header().Set("Retry-After", retryAfter(l.window))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

func retryAfter(window time.Duration) string {
	secs := int(window / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
