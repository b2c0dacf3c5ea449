// internal/errors/service_test.go
package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type transientError struct{ retryable bool }

func (e *transientError) Error() string   { return "transient" }
func (e *transientError) Retryable() bool { return e.retryable }

func fastService(maxRetries int) *Service {
	return NewService().WithRetryConfig(RetryConfig{
		MaxRetries:    maxRetries,
		BaseDelay:     time.Millisecond,
		BackoffFactor: 2.0,
		MaxDelay:      5 * time.Millisecond,
	})
}

func TestExecuteWithRetrySucceedsAfterRetries(t *testing.T) {
	attempts := 0
	err := fastService(3).ExecuteWithRetry(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return &transientError{retryable: true}
		}
		return nil
	}, "test")

	if err != nil {
		t.Fatal(err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestExecuteWithRetryStopsOnPermanentError(t *testing.T) {
	attempts := 0
	permanent := fmt.Errorf("config is broken")

	err := fastService(3).ExecuteWithRetry(context.Background(), func() error {
		attempts++
		return permanent
	}, "test")

	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, permanent) {
		t.Errorf("wrapped error must unwrap to the cause, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestExecuteWithRetryExhaustsBudget(t *testing.T) {
	attempts := 0
	err := fastService(2).ExecuteWithRetry(context.Background(), func() error {
		attempts++
		return &transientError{retryable: true}
	}, "test")

	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestExecuteWithRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fastService(5).ExecuteWithRetry(ctx, func() error {
		return &transientError{retryable: true}
	}, "test")

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"retryable error", &transientError{retryable: true}, true},
		{"non-retryable marker", &transientError{retryable: false}, false},
		{"wrapped retryable", fmt.Errorf("fetch: %w", &transientError{retryable: true}), true},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldRetry(tt.err); got != tt.want {
				t.Errorf("ShouldRetry = %v, want %v", got, tt.want)
			}
		})
	}
}
