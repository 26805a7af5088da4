package allocation

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy bounds retries around transient failures. Backoff is linear:
// the wait after attempt n is n*Backoff.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Do runs fn up to MaxAttempts times. Only errors classified transient (see
// IsTransient) are retried; validation and conflict errors fail
// immediately. Once the budget is spent the last error is surfaced inside a
// MaxRetriesError carrying the attempt count. Context cancellation stops
// the loop between attempts.
func (r RetryPolicy) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := r.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var last error
	for attempt := 1; attempt <= attempts; attempt++ {
		last = fn(ctx)
		if last == nil {
			return nil
		}
		if !IsTransient(last) {
			return last
		}
		if attempt == attempts {
			break
		}

		zap.S().Warnw("transient failure, retrying",
			"op", op,
			"attempt", attempt,
			"error", last,
		)
		select {
		case <-ctx.Done():
			return &MaxRetriesError{Op: op, Attempts: attempt, Last: ctx.Err()}
		case <-time.After(time.Duration(attempt) * r.Backoff):
		}
	}
	return &MaxRetriesError{Op: op, Attempts: attempts, Last: last}
}
