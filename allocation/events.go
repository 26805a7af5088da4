package allocation

import (
	"context"
	"time"
)

// AssignmentChangedEvent is handed to the notification collaborator after a
// committed assign or reassign. Delivery is best-effort; a failed emit
// never rolls the assignment back.
type AssignmentChangedEvent struct {
	EventID      string    `json:"eventID"`
	CaseID       string    `json:"caseID"`
	OldOfficerID string    `json:"oldOfficerID,omitempty"`
	NewOfficerID string    `json:"newOfficerID"`
	ActorID      string    `json:"actorID"`
	Notes        string    `json:"notes"`
	Timestamp    time.Time `json:"timestamp"`
}

// Notifier receives assignment events. Implementations must tolerate being
// called after the transaction has committed: returning an error only gets
// the failure logged.
type Notifier interface {
	AssignmentChanged(ctx context.Context, event AssignmentChangedEvent) error
}
