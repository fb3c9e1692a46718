package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"guestreview/genius/pkg/telemetry/metrics"
)

// Sweeper purges expired cache entries on a cron schedule. Expiry is
// enforced on read, so sweeping only bounds memory and disk growth.
type Sweeper struct {
	store    Store
	schedule string
	cron     *cron.Cron
	metrics  *metrics.Collector
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// SweeperOption configures a Sweeper.
type SweeperOption func(*Sweeper)

// WithSweeperMetrics reports sweep counts and the entry gauge to the
// given collector.
func WithSweeperMetrics(collector *metrics.Collector) SweeperOption {
	return func(s *Sweeper) { s.metrics = collector }
}

// NewSweeper creates a sweeper that purges store per the given cron
// expression (standard five-field syntax).
func NewSweeper(store Store, schedule string, opts ...SweeperOption) *Sweeper {
	s := &Sweeper{
		store:    store,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "cache.sweeper"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins scheduled sweeping. An empty schedule disables the
// sweeper. The sweeper stops when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("sweep schedule not configured, skipping sweeper")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cache sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("cache sweeper started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Sweeper) runSweep(ctx context.Context) {
	removed, err := s.store.Purge(ctx)
	if err != nil {
		s.logger.Error("scheduled cache sweep failed",
			"error", err,
		)
		return
	}

	s.metrics.RecordCacheSweep(removed)
	if n, err := s.store.Len(ctx); err == nil {
		s.metrics.SetCacheEntries(n)
	}

	if removed > 0 {
		s.logger.Info("scheduled cache sweep completed",
			"removed_count", removed,
		)
	} else {
		s.logger.Debug("scheduled cache sweep completed, no entries removed")
	}
}

// Stop stops the sweeper and waits for a running sweep to complete.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("cache sweeper stopped")
	}
}

// IsRunning returns true if the sweeper is running.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}
