package amadeus

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/donaldgifford/travel-search/internal/metrics"
)

// Minimum spacing between outbound requests per environment. The test
// environment allows 10 TPS and production 40 TPS.
const (
	TestMinDelay       = 100 * time.Millisecond
	ProductionMinDelay = 25 * time.Millisecond
)

const windowLength = time.Second

// MinDelayForEnvironment returns the request spacing for an environment
// name. Anything other than "production" is treated as test.
func MinDelayForEnvironment(env string) time.Duration {
	if strings.EqualFold(env, EnvironmentProduction) {
		return ProductionMinDelay
	}
	return TestMinDelay
}

// RateWindow is a snapshot of outbound request accounting. RequestCount
// covers the fixed one-second window starting at WindowStart.
type RateWindow struct {
	RequestCount  int
	WindowStart   time.Time
	LastRequestAt time.Time
}

// RateLimiter enforces a minimum delay between consecutive outbound
// requests. Grants are serialized, so concurrent callers are spaced out in
// arrival order.
type RateLimiter struct {
	minDelay time.Duration
	sem      chan struct{}

	mu     sync.Mutex
	window RateWindow
	total  atomic.Int64

	nowFunc   func() time.Time
	sleepFunc func(context.Context, time.Duration) error
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// WithRateLimiterSleepFunc overrides how the limiter waits for testing.
func WithRateLimiterSleepFunc(f func(context.Context, time.Duration) error) RateLimiterOption {
	return func(r *RateLimiter) {
		r.sleepFunc = f
	}
}

// NewRateLimiter creates a rate limiter that spaces requests at least
// minDelay apart.
func NewRateLimiter(minDelay time.Duration, opts ...RateLimiterOption) *RateLimiter {
	r := &RateLimiter{
		minDelay:  minDelay,
		sem:       make(chan struct{}, 1),
		nowFunc:   time.Now,
		sleepFunc: sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Wait blocks until the minimum delay since the previous grant has passed,
// or the context is canceled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	select {
	case r.sem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait: %w", ctx.Err())
	}
	defer func() { <-r.sem }()

	r.mu.Lock()
	last := r.window.LastRequestAt
	r.mu.Unlock()

	if !last.IsZero() {
		if wait := r.minDelay - r.nowFunc().Sub(last); wait > 0 {
			if err := r.sleepFunc(ctx, wait); err != nil {
				return fmt.Errorf("rate limiter wait: %w", err)
			}
		}
	}

	now := r.nowFunc()

	r.mu.Lock()
	if r.window.WindowStart.IsZero() || now.Sub(r.window.WindowStart) >= windowLength {
		r.window.WindowStart = now
		r.window.RequestCount = 0
	}
	r.window.RequestCount++
	r.window.LastRequestAt = now
	count := r.window.RequestCount
	r.mu.Unlock()

	r.total.Add(1)
	metrics.AmadeusWindowRequests.Set(float64(count))
	return nil
}

// Window returns a copy of the current request window.
func (r *RateLimiter) Window() RateWindow {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.window
}

// Total returns the number of grants since creation.
func (r *RateLimiter) Total() int64 {
	return r.total.Load()
}

// MinDelay returns the configured spacing between requests.
func (r *RateLimiter) MinDelay() time.Duration {
	return r.minDelay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
