package retry

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrTooManyAttempts = errors.New("too many retry attempts")

// Callable is retried until it returns nil or wants to stop. Returning
// Again marks the error as retryable; any other error stops immediately.
type Callable func(attempt int) error

type retryableError struct {
	error
}

// Again wraps an error so Incremental treats it as retryable.
func Again(err error) error {
	if err == nil {
		return nil
	}

	return &retryableError{error: err}
}

// Incremental retries cb with a linearly growing pause: step, 2*step,
// 3*step and so on, up to maxAttempts calls in total.
func Incremental(ctx context.Context, step time.Duration, maxAttempts int, cb Callable) error {
	pause := time.Duration(0)

	for attempt := 1; ; attempt++ {
		err := cb(attempt)
		if err == nil {
			return nil
		}

		var r *retryableError
		if !errors.As(err, &r) {
			return errors.Wrapf(err, "attempt %d failed", attempt)
		}

		if attempt >= maxAttempts {
			return errors.Wrap(ErrTooManyAttempts, r.Error())
		}

		pause += step

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pause):
		}
	}
}
