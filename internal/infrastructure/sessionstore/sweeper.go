package sessionstore

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/resale/backend/internal/domain/session"
)

// SweeperConfig holds sweeper configuration
type SweeperConfig struct {
	Enabled bool
	// Interval is how often the sweeper scans for stale drafts
	Interval time.Duration
	// MaxIdle is how long a draft may sit without activity before its
	// staged images are released and the draft is dropped
	MaxIdle time.Duration
}

// DefaultSweeperConfig returns default sweeper configuration
func DefaultSweeperConfig() SweeperConfig {
	return SweeperConfig{
		Enabled:  true,
		Interval: 5 * time.Minute,
		MaxIdle:  time.Hour,
	}
}

// Sweeper periodically removes idle drafts and deletes their staged image
// files from disk.
type Sweeper struct {
	config SweeperConfig
	store  session.Store
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewSweeper creates a draft sweeper.
func NewSweeper(config SweeperConfig, store session.Store, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		config: config,
		store:  store,
		logger: logger,
	}
}

// Start starts the background sweep loop.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Draft sweeper started",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("max_idle", s.config.MaxIdle),
	)
	return nil
}

// Stop gracefully stops the sweeper.
func (s *Sweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Draft sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Draft sweeper stop timed out")
		return ctx.Err()
	}
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single sweep pass and returns how many drafts were
// removed.
func (s *Sweeper) SweepOnce(ctx context.Context) int {
	cutoff := time.Now().Add(-s.config.MaxIdle)
	expired, err := s.store.Expired(ctx, cutoff)
	if err != nil {
		s.logger.Error("Draft expiry scan failed", zap.Error(err))
		return 0
	}

	removed := 0
	for _, draft := range expired {
		for _, path := range draft.ImagePaths {
			if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
				s.logger.Warn("Failed to remove staged image",
					zap.String("draft_id", draft.ID.String()),
					zap.String("path", path),
					zap.Error(rmErr))
			}
		}
		if delErr := s.store.Delete(ctx, draft.ID); delErr != nil {
			s.logger.Warn("Failed to delete expired draft",
				zap.String("draft_id", draft.ID.String()),
				zap.Error(delErr))
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("Swept expired drafts", zap.Int("removed", removed))
	}
	return removed
}
