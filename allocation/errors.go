package allocation

import (
	"errors"
	"fmt"
)

// Validation errors. Caller-correctable, never retried.
var (
	ErrUnclassifiedCrimeType = errors.New("crime type could not be classified")
	ErrNoOfficerSelected     = errors.New("no officer selected")
	ErrReasonRequired        = errors.New("reassignment requires a reason")
)

// Conflict errors. Surfaced to the operator with a prompt to refresh and
// re-select; never retried automatically.
var (
	ErrAlreadyAssigned        = errors.New("case already has an active primary assignment")
	ErrNotAssigned            = errors.New("case has no active primary assignment")
	ErrOfficerUnavailable     = errors.New("officer is unavailable for assignment")
	ErrConcurrentModification = errors.New("assignment state changed since it was last read")
	ErrCaseClosed             = errors.New("case is in a terminal status")
)

// Lookup errors
var (
	ErrCaseNotFound    = errors.New("case not found")
	ErrOfficerNotFound = errors.New("officer not found")
)

// PoolResolutionError wraps an underlying storage failure during candidate
// pool resolution. It is classified transient so the retry wrapper picks
// it up.
type PoolResolutionError struct {
	Err error
}

func (e *PoolResolutionError) Error() string {
	return fmt.Sprintf("pool resolution failed: %v", e.Err)
}

func (e *PoolResolutionError) Unwrap() error { return e.Err }

// Transient marks this error as retryable
func (e *PoolResolutionError) Transient() bool { return true }

// MaxRetriesError is returned once the retry budget for a transient failure
// is exhausted. Last carries the final underlying error.
type MaxRetriesError struct {
	Op       string
	Attempts int
	Last     error
}

func (e *MaxRetriesError) Error() string {
	return fmt.Sprintf("%s: giving up after %d attempts: %v", e.Op, e.Attempts, e.Last)
}

func (e *MaxRetriesError) Unwrap() error { return e.Last }

type transient interface {
	Transient() bool
}

// IsTransient reports whether err is classified as transient and therefore
// eligible for retry. Validation and conflict errors are never transient.
func IsTransient(err error) bool {
	var t transient
	if errors.As(err, &t) {
		return t.Transient()
	}
	return false
}
