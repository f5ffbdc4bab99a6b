// ABOUTME: This file implements a bounded retry mechanism with exponential backoff
// ABOUTME: Used by the feed fetcher so transient failures resolve to placeholder values
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

type Config struct {
	MaxAttempts   int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterFactor  float64
}

// ErrorClassifier reports whether an error is worth retrying.
type ErrorClassifier func(error) bool

type Retrier struct {
	config      Config
	isRetryable ErrorClassifier
	logger      *slog.Logger
}

func New(config Config, classifier ErrorClassifier, logger *slog.Logger) *Retrier {
	return &Retrier{
		config:      config,
		isRetryable: classifier,
		logger:      logger,
	}
}

// Do runs operation until it succeeds, the attempt budget is spent, or the
// error is classified non-retryable. The wait between attempts is
// cancellable through ctx.
func (r *Retrier) Do(ctx context.Context, operation func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				r.logger.Info("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		retryable := r.isRetryable != nil && r.isRetryable(lastErr)
		r.logger.Warn("operation attempt failed",
			"attempt", attempt,
			"max_attempts", r.config.MaxAttempts,
			"error", lastErr,
			"retryable", retryable)

		if attempt == r.config.MaxAttempts || !retryable {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(r.delay(attempt)):
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", r.config.MaxAttempts, lastErr)
}

func (r *Retrier) delay(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.BackoffFactor, float64(attempt-1))
	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}

	// Jitter spreads concurrent retries apart.
	delay *= 1.0 + (rand.Float64()-0.5)*r.config.JitterFactor

	return time.Duration(delay)
}
