package cache

import (
	"context"
	"errors"
	"time"
)

// dialAttempts bounds RetryWithBackoff.
const dialAttempts = 3

// ErrNetwork marks a remote cache or store that could not be reached.
var ErrNetwork = errors.New("network error")

// RetryableError marks a failure worth another attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err so RetryWithBackoff tries again. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// Retryable, or has been tried three times. The wait starts at base and
// doubles. Redis and Mongo backends use it for their initial ping.
func RetryWithBackoff(ctx context.Context, base time.Duration, fn func() error) error {
	var err error
	wait := base
	for attempt := range dialAttempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == dialAttempts-1 {
			break
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
	return err
}
