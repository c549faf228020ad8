package cache

import (
	"context"
	"errors"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable checks if an error is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff configures RetryWithBackoff.
type Backoff struct {
	Attempts int           // total attempts, including the first
	Delay    time.Duration // delay before the first retry, doubled after each
}

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable error,
// or b.Attempts is exhausted. The last error is returned unwrapped.
func RetryWithBackoff(ctx context.Context, b Backoff, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var lastErr error

	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}

	var re *RetryableError
	if errors.As(lastErr, &re) {
		return re.Err
	}
	return lastErr
}
