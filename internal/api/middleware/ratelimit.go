package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/travel-search/internal/metrics"
	domain "github.com/donaldgifford/travel-search/pkg/types"
)

const defaultIdleTTL = 10 * time.Minute

// ClientLimiter keeps one token bucket per client IP. Buckets idle longer
// than the idle TTL are dropped by Cleanup.
type ClientLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	nowFunc func() time.Time

	mu      sync.Mutex
	clients map[string]*clientEntry
}

type clientEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// ClientLimiterOption configures a ClientLimiter.
type ClientLimiterOption func(*ClientLimiter)

// WithIdleTTL sets how long an unused client bucket is kept.
func WithIdleTTL(d time.Duration) ClientLimiterOption {
	return func(l *ClientLimiter) {
		if d > 0 {
			l.idleTTL = d
		}
	}
}

// WithLimiterNowFunc overrides the clock for testing.
func WithLimiterNowFunc(f func() time.Time) ClientLimiterOption {
	return func(l *ClientLimiter) {
		l.nowFunc = f
	}
}

// NewClientLimiter allows each client perSecond requests with the given
// burst.
func NewClientLimiter(perSecond float64, burst int, opts ...ClientLimiterOption) *ClientLimiter {
	l := &ClientLimiter{
		limit:   rate.Limit(perSecond),
		burst:   max(burst, 1),
		idleTTL: defaultIdleTTL,
		nowFunc: time.Now,
		clients: make(map[string]*clientEntry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether key may make a request now.
func (l *ClientLimiter) Allow(key string) bool {
	now := l.nowFunc()

	l.mu.Lock()
	ent, ok := l.clients[key]
	if !ok {
		ent = &clientEntry{lim: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = ent
	}
	ent.lastSeen = now
	l.mu.Unlock()

	return ent.lim.AllowN(now, 1)
}

// Cleanup drops buckets idle longer than the idle TTL.
func (l *ClientLimiter) Cleanup() {
	cutoff := l.nowFunc().Add(-l.idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, ent := range l.clients {
		if ent.lastSeen.Before(cutoff) {
			delete(l.clients, k)
		}
	}
}

// Len returns the number of tracked clients.
func (l *ClientLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// StartJanitor runs Cleanup every idle TTL until ctx is done.
func (l *ClientLimiter) StartJanitor(ctx context.Context) {
	t := time.NewTicker(l.idleTTL)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Cleanup()
			}
		}
	}()
}

// retryAfterSeconds is the whole-second wait until one token refills.
func (l *ClientLimiter) retryAfterSeconds() int {
	if l.limit <= 0 {
		return 1
	}
	return max(int(math.Ceil(1/float64(l.limit))), 1)
}

// RateLimit returns Echo middleware that rejects clients exceeding their
// bucket with 429. Probe and scrape paths are never limited.
func RateLimit(l *ClientLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, skip := metricsSkipPaths[c.Request().URL.Path]; skip {
				return next(c)
			}

			if l.Allow(c.RealIP()) {
				return next(c)
			}

			metrics.InboundRateLimitedTotal.Inc()
			c.Response().Header().Set("Retry-After", strconv.Itoa(l.retryAfterSeconds()))
			return c.JSON(http.StatusTooManyRequests, domain.ServiceResponse[any]{
				Success: false,
				Error:   "rate limit exceeded",
			})
		}
	}
}
