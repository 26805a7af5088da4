package allocation

import "fmt"

// AttemptState tracks where a single assignment attempt is in its lifecycle
type AttemptState int

// Assignment attempt states
const (
	StateIdle AttemptState = iota
	StateResolving
	StateSuggesting
	StateAwaitingConfirmation
	StateCommitting
	StateCommitted
	StateFailed
)

func (s AttemptState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateSuggesting:
		return "suggesting"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateCommitting:
		return "committing"
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Attempt is the state machine for one assignment attempt. Resolving may
// cycle back to itself up to the retry limit before failing. A failed
// commit returns to AwaitingConfirmation for a manual retry rather than
// retrying automatically, to avoid silently double-assigning. Abandonment
// is honored at any point before Committing.
type Attempt struct {
	state        AttemptState
	resolveTries int
	maxResolve   int
}

// NewAttempt starts a new attempt in Idle with the given resolve retry
// budget
func NewAttempt(maxResolve int) *Attempt {
	if maxResolve <= 0 {
		maxResolve = 1
	}
	return &Attempt{state: StateIdle, maxResolve: maxResolve}
}

// State returns the current state
func (a *Attempt) State() AttemptState { return a.state }

// ResolveTries returns how many resolve attempts have been consumed
func (a *Attempt) ResolveTries() int { return a.resolveTries }

// Begin moves Idle to Resolving
func (a *Attempt) Begin() error {
	if a.state != StateIdle {
		return a.invalid("begin")
	}
	a.state = StateResolving
	a.resolveTries = 1
	return nil
}

// ResolveFailed records a failed pool resolution. Within budget the attempt
// stays in Resolving; past it the attempt fails.
func (a *Attempt) ResolveFailed() error {
	if a.state != StateResolving {
		return a.invalid("resolve failure")
	}
	if a.resolveTries >= a.maxResolve {
		a.state = StateFailed
		return nil
	}
	a.resolveTries++
	return nil
}

// Resolved moves Resolving to Suggesting
func (a *Attempt) Resolved() error {
	if a.state != StateResolving {
		return a.invalid("resolved")
	}
	a.state = StateSuggesting
	return nil
}

// Suggested moves Suggesting to AwaitingConfirmation
func (a *Attempt) Suggested() error {
	if a.state != StateSuggesting {
		return a.invalid("suggested")
	}
	a.state = StateAwaitingConfirmation
	return nil
}

// Confirm moves AwaitingConfirmation to Committing. Past this point
// abandonment is no longer honored.
func (a *Attempt) Confirm() error {
	if a.state != StateAwaitingConfirmation {
		return a.invalid("confirm")
	}
	a.state = StateCommitting
	return nil
}

// CommitFailed returns a failed commit to AwaitingConfirmation for manual
// retry
func (a *Attempt) CommitFailed() error {
	if a.state != StateCommitting {
		return a.invalid("commit failure")
	}
	a.state = StateAwaitingConfirmation
	return nil
}

// CommitSucceeded moves Committing to Committed
func (a *Attempt) CommitSucceeded() error {
	if a.state != StateCommitting {
		return a.invalid("commit success")
	}
	a.state = StateCommitted
	return nil
}

// Abandon cancels the attempt. It is rejected once Committing has been
// issued: the commit either completes or fails cleanly, never partially.
func (a *Attempt) Abandon() error {
	switch a.state {
	case StateCommitting, StateCommitted:
		return a.invalid("abandon")
	case StateFailed:
		return nil
	}
	a.state = StateFailed
	return nil
}

func (a *Attempt) invalid(event string) error {
	return fmt.Errorf("invalid %s in state %s", event, a.state)
}
