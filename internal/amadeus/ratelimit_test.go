package amadeus_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/travel-search/internal/amadeus"
)

// fakeClock is a manually advanced clock whose sleeps advance time.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Advance(d)
	return nil
}

func TestMinDelayForEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want time.Duration
	}{
		{env: "test", want: 100 * time.Millisecond},
		{env: "production", want: 25 * time.Millisecond},
		{env: "PRODUCTION", want: 25 * time.Millisecond},
		{env: "", want: 100 * time.Millisecond},
		{env: "staging", want: 100 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, amadeus.MinDelayForEnvironment(tt.env))
		})
	}
}

func TestRateLimiter_SpacesSequentialGrants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		minDelay time.Duration
		calls    int
		between  time.Duration
	}{
		{name: "test environment back to back", minDelay: 100 * time.Millisecond, calls: 5},
		{name: "production back to back", minDelay: 25 * time.Millisecond, calls: 8},
		{name: "callers already slower than limit", minDelay: 100 * time.Millisecond, calls: 4, between: 150 * time.Millisecond},
		{name: "partial wait", minDelay: 100 * time.Millisecond, calls: 4, between: 40 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clock := newFakeClock()
			rl := amadeus.NewRateLimiter(
				tt.minDelay,
				amadeus.WithRateLimiterNowFunc(clock.Now),
				amadeus.WithRateLimiterSleepFunc(clock.Sleep),
			)

			var grants []time.Time
			for range tt.calls {
				require.NoError(t, rl.Wait(context.Background()))
				grants = append(grants, rl.Window().LastRequestAt)
				clock.Advance(tt.between)
			}

			for i := 1; i < len(grants); i++ {
				gap := grants[i].Sub(grants[i-1])
				assert.GreaterOrEqual(t, gap, tt.minDelay, "grant %d", i)
				assert.Equal(t, max(tt.minDelay, tt.between), gap, "grant %d", i)
			}
			assert.Equal(t, int64(tt.calls), rl.Total())
		})
	}
}

func TestRateLimiter_ConcurrentCallersNeverViolateDelay(t *testing.T) {
	t.Parallel()

	const (
		minDelay = 20 * time.Millisecond
		callers  = 6
	)

	rl := amadeus.NewRateLimiter(minDelay)

	var wg sync.WaitGroup
	start := time.Now()
	for range callers {
		wg.Go(func() {
			assert.NoError(t, rl.Wait(context.Background()))
		})
	}
	wg.Wait()

	assert.GreaterOrEqual(t, time.Since(start), (callers-1)*minDelay)
	assert.Equal(t, int64(callers), rl.Total())
}

func TestRateLimiter_Window(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	start := clock.Now()
	rl := amadeus.NewRateLimiter(
		100*time.Millisecond,
		amadeus.WithRateLimiterNowFunc(clock.Now),
		amadeus.WithRateLimiterSleepFunc(clock.Sleep),
	)

	assert.Equal(t, amadeus.RateWindow{}, rl.Window())

	// Grants at 0, 100, ..., 900ms land in the first window.
	for range 10 {
		require.NoError(t, rl.Wait(context.Background()))
	}
	w := rl.Window()
	assert.Equal(t, 10, w.RequestCount)
	assert.Equal(t, start, w.WindowStart)
	assert.Equal(t, start.Add(900*time.Millisecond), w.LastRequestAt)

	// The 1000ms grant opens a new window.
	require.NoError(t, rl.Wait(context.Background()))
	w = rl.Window()
	assert.Equal(t, 1, w.RequestCount)
	assert.Equal(t, start.Add(time.Second), w.WindowStart)
	assert.Equal(t, int64(11), rl.Total())
}

func TestRateLimiter_ContextCanceled(t *testing.T) {
	t.Parallel()

	rl := amadeus.NewRateLimiter(time.Hour)
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int64(1), rl.Total())
}

func TestRateLimiter_CanceledWhileQueued(t *testing.T) {
	t.Parallel()

	rl := amadeus.NewRateLimiter(time.Hour)
	require.NoError(t, rl.Wait(context.Background()))

	// Occupy the limiter with a long wait.
	holder, cancelHolder := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = rl.Wait(holder)
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := rl.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)

	cancelHolder()
	<-done
}
