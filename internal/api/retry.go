package api

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy configures Retry. A nil ShouldRetry retries every error.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	ShouldRetry func(error) bool
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    60 * time.Second,
	}
}

// CalculateBackoff returns base * 2^retryCount, capped at max when max > 0.
// A negative retryCount returns base.
func CalculateBackoff(base time.Duration, retryCount int, max time.Duration) time.Duration {
	if retryCount < 0 {
		return base
	}
	// 2^30 seconds is far beyond any sensible cap
	if retryCount > 30 {
		retryCount = 30
	}

	backoff := base * time.Duration(1<<retryCount)
	if backoff < base && max > 0 {
		// overflow
		return max
	}
	if max > 0 && backoff > max {
		return max
	}
	return backoff
}

// Retry runs fn until it succeeds or MaxAttempts is reached. The error of
// the last attempt is returned unchanged. Cancelling ctx aborts the wait
// between attempts and returns ctx.Err().
func Retry[T any](ctx context.Context, policy RetryPolicy, logger *zap.Logger, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if attempt == attempts {
			return zero, err
		}
		if policy.ShouldRetry != nil && !policy.ShouldRetry(err) {
			return zero, err
		}

		delay := CalculateBackoff(policy.BaseDelay, attempt-1, policy.MaxDelay)
		logger.Warn("Attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Duration("delay", delay),
			zap.Error(err))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
