package allocation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Pinoccchio/LawbotWeb-sub002/allocation"
)

func TestRetryPolicy_ExhaustsTransientFailures(t *testing.T) {
	policy := allocation.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}
	underlying := errors.New("connection reset")

	calls := 0
	err := policy.Do(context.Background(), "resolve candidates", func(ctx context.Context) error {
		calls++
		return &allocation.PoolResolutionError{Err: underlying}
	})

	assert.Equal(t, 3, calls)
	var maxRetries *allocation.MaxRetriesError
	assert.ErrorAs(t, err, &maxRetries)
	assert.Equal(t, 3, maxRetries.Attempts)
	assert.ErrorIs(t, maxRetries.Last, underlying)
}

func TestRetryPolicy_SucceedsMidway(t *testing.T) {
	policy := allocation.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

	calls := 0
	err := policy.Do(context.Background(), "resolve candidates", func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return &allocation.PoolResolutionError{Err: errors.New("timeout")}
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetryPolicy_ValidationFailsImmediately(t *testing.T) {
	policy := allocation.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

	calls := 0
	err := policy.Do(context.Background(), "classify", func(ctx context.Context) error {
		calls++
		return allocation.ErrUnclassifiedCrimeType
	})

	assert.ErrorIs(t, err, allocation.ErrUnclassifiedCrimeType)
	assert.Equal(t, 1, calls, "validation errors never retry")
}

func TestRetryPolicy_ConflictFailsImmediately(t *testing.T) {
	policy := allocation.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

	calls := 0
	err := policy.Do(context.Background(), "commit", func(ctx context.Context) error {
		calls++
		return allocation.ErrConcurrentModification
	})

	assert.ErrorIs(t, err, allocation.ErrConcurrentModification)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_StopsOnCancelledContext(t *testing.T) {
	policy := allocation.RetryPolicy{MaxAttempts: 5, Backoff: 50 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := policy.Do(ctx, "resolve candidates", func(ctx context.Context) error {
		calls++
		cancel()
		return &allocation.PoolResolutionError{Err: errors.New("timeout")}
	})

	assert.Equal(t, 1, calls)
	var maxRetries *allocation.MaxRetriesError
	assert.ErrorAs(t, err, &maxRetries)
	assert.ErrorIs(t, maxRetries.Last, context.Canceled)
}

func TestRetryPolicy_ZeroAttemptsRunsOnce(t *testing.T) {
	policy := allocation.RetryPolicy{}

	calls := 0
	_ = policy.Do(context.Background(), "noop", func(ctx context.Context) error {
		calls++
		return nil
	})
	assert.Equal(t, 1, calls)
}
