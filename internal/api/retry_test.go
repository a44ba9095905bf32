package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestCalculateBackoff(t *testing.T) {
	tests := []struct {
		retryCount int
		want       time.Duration
	}{
		{-1, 1 * time.Second},
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{10, 60 * time.Second},  // capped
		{100, 60 * time.Second}, // still capped
	}

	for _, tt := range tests {
		delay := CalculateBackoff(time.Second, tt.retryCount, 60*time.Second)
		if delay != tt.want {
			t.Errorf("CalculateBackoff(1s, %d, 60s) = %s, want %s", tt.retryCount, delay, tt.want)
		}
	}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	result, err := Retry(context.Background(), policy, zap.NewNop(), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("temporary")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if result != "ok" {
		t.Errorf("Expected ok, got %q", result)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestRetry_ReturnsLastError(t *testing.T) {
	calls := 0
	lastErr := errors.New("third failure")
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	_, err := Retry(context.Background(), policy, zap.NewNop(), func(ctx context.Context) (int, error) {
		calls++
		if calls == 3 {
			return 0, lastErr
		}
		return 0, errors.New("earlier failure")
	})
	if err != lastErr {
		t.Errorf("Expected the last error unchanged, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestRetry_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	policy := RetryPolicy{MaxAttempts: 5, BaseDelay: time.Millisecond, ShouldRetry: IsRetryable}

	_, err := Retry(context.Background(), policy, zap.NewNop(), func(ctx context.Context) (int, error) {
		calls++
		return 0, &HTTPError{StatusCode: http.StatusBadRequest}
	})
	if !IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected a single call, got %d", calls)
	}
}

func TestRetry_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Hour}

	calls := 0
	_, err := Retry(ctx, policy, zap.NewNop(), func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, errors.New("failure")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("connection refused"), true},
		{&HTTPError{StatusCode: http.StatusInternalServerError}, true},
		{&HTTPError{StatusCode: http.StatusTooManyRequests}, true},
		{&HTTPError{StatusCode: http.StatusUnauthorized}, false},
		{&HTTPError{StatusCode: http.StatusNotFound}, false},
	}

	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
