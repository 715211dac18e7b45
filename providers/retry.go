package providers

import (
	"context"
	"time"

	"github.com/organai/organai/providers/models"
)

const (
	// MaxRetries is the number of additional attempts after the first failure.
	MaxRetries = 3
	// RetryDelay is the initial backoff; it doubles on every attempt.
	RetryDelay = time.Second
)

// WithRetry runs fn until it succeeds, fails with a non-transient error, or
// the attempt budget is exhausted. Backoff is exponential and the context is
// honored between attempts.
func WithRetry(ctx context.Context, fn func(ctx context.Context) (string, error)) (string, error) {
	var lastErr error
	delay := RetryDelay

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !models.IsTransient(err) {
			return "", err
		}
		lastErr = err
	}

	return "", lastErr
}
