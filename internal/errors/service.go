// internal/errors/service.go

// Package errors provides the retry executor used around page fetches.
// Retryability is a property of the error itself: anything implementing
// Retryable with a true result is retried with exponential backoff and
// jitter, everything else fails fast.
package errors

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"time"
)

// Retryable marks errors that represent transient conditions worth another
// attempt, such as a block page or a gateway timeout.
type Retryable interface {
	Retryable() bool
}

// RetryConfig defines retry behavior.
type RetryConfig struct {
	MaxRetries    int
	BaseDelay     time.Duration
	BackoffFactor float64
	MaxDelay      time.Duration
}

// Service executes operations with retry semantics.
type Service struct {
	retry RetryConfig
}

// NewService creates a retry service with sane defaults.
func NewService() *Service {
	return &Service{
		retry: RetryConfig{
			MaxRetries:    2,
			BaseDelay:     2 * time.Second,
			BackoffFactor: 2.0,
			MaxDelay:      30 * time.Second,
		},
	}
}

// WithRetryConfig overrides the retry behavior.
func (s *Service) WithRetryConfig(cfg RetryConfig) *Service {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 2 * time.Second
	}
	if cfg.BackoffFactor < 1 {
		cfg.BackoffFactor = 2.0
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 30 * time.Second
	}
	s.retry = cfg
	return s
}

// ExecuteWithRetry runs the operation, retrying retryable failures until
// the attempt budget runs out or the context is cancelled.
func (s *Service) ExecuteWithRetry(ctx context.Context, operation func() error, operationName string) error {
	var lastErr error

	for attempt := 0; attempt <= s.retry.MaxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if !ShouldRetry(err) || attempt == s.retry.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.delay(attempt)):
		}
	}

	return fmt.Errorf("operation %s failed after %d attempt(s): %w",
		operationName, s.retry.MaxRetries+1, lastErr)
}

// ShouldRetry reports whether an error is worth another attempt.
func ShouldRetry(err error) bool {
	var r Retryable
	if errors.As(err, &r) {
		return r.Retryable()
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// delay computes exponential backoff with jitter, capped at MaxDelay.
func (s *Service) delay(attempt int) time.Duration {
	d := s.retry.BaseDelay
	for i := 0; i < attempt; i++ {
		d = time.Duration(float64(d) * s.retry.BackoffFactor)
	}
	if d > s.retry.MaxDelay {
		d = s.retry.MaxDelay
	}
	return d + time.Duration(rand.Int63n(int64(d/2)+1))
}
