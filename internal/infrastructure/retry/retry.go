// Package retry provides a small bounded-retry helper for transient
// infrastructure failures.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy controls how an operation is retried.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int
	// Backoff maps the zero-based attempt number to the wait before the
	// next try.
	Backoff func(attempt int) time.Duration
}

// LinearPolicy waits (attempt+1) units between tries: unit, 2*unit, 3*unit.
func LinearPolicy(maxAttempts int, unit time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * unit
		},
	}
}

// Do runs fn until it succeeds, the attempts are exhausted, or the context is
// done. The last error is wrapped with the attempt count.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		wait := time.Duration(0)
		if p.Backoff != nil {
			wait = p.Backoff(attempt)
		}
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
