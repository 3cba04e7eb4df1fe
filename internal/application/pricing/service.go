// Package pricing orchestrates comparable-sales lookups: it fetches sold and
// active comps concurrently and folds them into a price intelligence report.
package pricing

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/resale/backend/internal/domain/pricing"
)

// CompSearcher fetches comparable listings from the marketplace search
// surfaces. Implemented by the browse API client.
type CompSearcher interface {
	SearchSold(ctx context.Context, query string, limit int) ([]pricing.SoldComp, error)
	SearchActive(ctx context.Context, query string, limit int) ([]pricing.ActiveComp, error)
}

// ServiceConfig holds configuration for the comps service
type ServiceConfig struct {
	// MaxResults caps how many comps are requested per search
	MaxResults int
	// Timeout bounds the combined fetch
	Timeout time.Duration
}

// DefaultServiceConfig returns the default configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxResults: pricing.MaxCompsPerQuery,
		Timeout:    15 * time.Second,
	}
}

// Service computes price intelligence for a search query.
type Service struct {
	searcher CompSearcher
	logger   *zap.Logger
	config   ServiceConfig
}

// NewService creates a comps service.
func NewService(searcher CompSearcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		searcher: searcher,
		logger:   logger,
		config:   DefaultServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *Service) SetConfig(config ServiceConfig) {
	if config.MaxResults <= 0 || config.MaxResults > pricing.MaxCompsPerQuery {
		config.MaxResults = pricing.MaxCompsPerQuery
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultServiceConfig().Timeout
	}
	s.config = config
}

// Analyze fetches sold and active comps concurrently and computes the
// intelligence report. The two fetches are independent: a failure in one
// degrades the report instead of suppressing the other. Only when both fail
// is the error surfaced.
func (s *Service) Analyze(ctx context.Context, query string) (pricing.Intelligence, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return pricing.Intelligence{}, pricing.ErrEmptyQuery
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	var (
		wg        sync.WaitGroup
		sold      []pricing.SoldComp
		active    []pricing.ActiveComp
		soldErr   error
		activeErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sold, soldErr = s.searcher.SearchSold(ctx, query, s.config.MaxResults)
	}()
	go func() {
		defer wg.Done()
		active, activeErr = s.searcher.SearchActive(ctx, query, s.config.MaxResults)
	}()
	wg.Wait()

	if soldErr != nil && activeErr != nil {
		return pricing.Intelligence{}, soldErr
	}
	if soldErr != nil {
		s.logger.Warn("sold comps fetch failed, report limited to active listings",
			zap.String("query", query), zap.Error(soldErr))
		sold = nil
	}
	if activeErr != nil {
		s.logger.Warn("active comps fetch failed, sell-through unavailable",
			zap.String("query", query), zap.Error(activeErr))
		active = nil
	}

	return pricing.Compute(query, sold, active), nil
}
