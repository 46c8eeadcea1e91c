package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SweepFunc runs one maintenance pass and reports how many rows it
// touched.
type SweepFunc func(context.Context) (int64, error)

// Sweeper runs a maintenance function on a fixed interval until stopped.
// Used for housekeeping that must not block request handling, such as
// purging expired sessions.
type Sweeper struct {
	name     string
	interval time.Duration
	sweep    SweepFunc
	logger   *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewSweeper builds a sweeper. Intervals below one second are clamped.
func NewSweeper(name string, interval time.Duration, sweep SweepFunc, logger *zap.Logger) *Sweeper {
	if interval < time.Second {
		interval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{
		name:     name,
		interval: interval,
		sweep:    sweep,
		logger:   logger,
	}
}

// Start launches the background loop. Safe to call once.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.loop()
	s.started = true
	s.logger.Sugar().Infow("sweeper started", "sweeper", s.name, "interval", s.interval)
}

// Stop cancels the loop and waits for the current pass to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
	s.logger.Sugar().Infow("sweeper stopped", "sweeper", s.name)
}

func (s *Sweeper) loop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *Sweeper) runOnce() {
	count, err := s.sweep(s.ctx)
	if err != nil {
		s.logger.Sugar().Warnw("sweep failed", "sweeper", s.name, "error", err)
		return
	}
	if count > 0 {
		s.logger.Sugar().Infow("sweep completed", "sweeper", s.name, "removed", count)
	}
}
