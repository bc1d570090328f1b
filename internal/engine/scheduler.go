// Package engine runs background jobs for the API server.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/travel-search/internal/metrics"
)

const defaultWarmupTimeout = 30 * time.Second

// TokenWarmer obtains an access token, refreshing the cache if needed.
type TokenWarmer interface {
	Token(ctx context.Context) (string, error)
}

// Scheduler keeps the Amadeus access token warm so searches rarely pay for
// a token exchange.
type Scheduler struct {
	cron    *cron.Cron
	tokens  TokenWarmer
	log     *slog.Logger
	timeout time.Duration
	nowFunc func() time.Time

	warmupEntryID cron.EntryID
}

// NewScheduler creates a Scheduler that warms the token every interval.
func NewScheduler(tokens TokenWarmer, interval time.Duration, log *slog.Logger) (*Scheduler, error) {
	if tokens == nil {
		return nil, errors.New("token warmer is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("token warm-up interval must be positive (got %s)", interval)
	}

	c := cron.New()

	s := &Scheduler{
		cron:    c,
		tokens:  tokens,
		log:     log,
		timeout: defaultWarmupTimeout,
		nowFunc: time.Now,
	}

	id, err := c.AddFunc("@every "+interval.String(), s.runWarmup)
	if err != nil {
		return nil, fmt.Errorf("registering token warm-up: %w", err)
	}
	s.warmupEntryID = id

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
	s.SyncNextRunTimestamps()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// SyncNextRunTimestamps publishes the next warm-up time.
func (s *Scheduler) SyncNextRunTimestamps() {
	entry := s.cron.Entry(s.warmupEntryID)
	if entry.Next.IsZero() {
		return
	}
	metrics.TokenWarmupNextTimestamp.Set(float64(entry.Next.Unix()))
}

// Warmup obtains a token once, bounded by the warm-up timeout.
func (s *Scheduler) Warmup(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.tokens.Token(ctx); err != nil {
		metrics.TokenWarmupFailuresTotal.Inc()
		return fmt.Errorf("token warm-up: %w", err)
	}

	metrics.TokenWarmupLastSuccess.Set(float64(s.nowFunc().Unix()))
	return nil
}

func (s *Scheduler) runWarmup() {
	defer s.SyncNextRunTimestamps()

	if err := s.Warmup(context.Background()); err != nil {
		s.log.Error("scheduled token warm-up failed", "error", err)
		return
	}
	s.log.Debug("scheduled token warm-up succeeded")
}
