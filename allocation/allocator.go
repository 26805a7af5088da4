package allocation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Pinoccchio/LawbotWeb-sub002/databases"
	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

// Allocator performs the auditable assign/reassign transaction. All
// dependencies are injected so tests run against mocks with a fixed clock.
type Allocator struct {
	Complaints databases.ComplaintDatabase
	Officers   databases.OfficerDatabase
	Records    databases.AssignmentRecordDatabase
	Notifier   Notifier
	Clock      func() time.Time
	Ceiling    int
}

// AssignRequest carries one operator-confirmed primary assignment.
// ObservedVersion is the complaint __v the operator saw when the dialog was
// opened; the commit fails with ErrConcurrentModification when it no longer
// matches.
type AssignRequest struct {
	CaseID          string `json:"caseID"`
	OfficerID       string `json:"officerID"`
	ActorID         string `json:"actorID"`
	Notes           string `json:"notes"`
	ObservedVersion int32  `json:"observedVersion"`
}

// ReassignRequest transfers primary accountability to a new officer.
// Reason is mandatory and is written into the new assignment record.
type ReassignRequest struct {
	CaseID          string `json:"caseID"`
	NewOfficerID    string `json:"newOfficerID"`
	ActorID         string `json:"actorID"`
	Reason          string `json:"reason"`
	ObservedVersion int32  `json:"observedVersion"`
}

// AssignmentResult reports a committed assignment
type AssignmentResult struct {
	CaseID            string                 `json:"caseID"`
	OfficerID         string                 `json:"officerID"`
	PreviousOfficerID string                 `json:"previousOfficerID,omitempty"`
	RecordID          string                 `json:"recordID"`
	AssignmentType    string                 `json:"assignmentType"`
	Version           int32                  `json:"version"`
	Event             AssignmentChangedEvent `json:"event"`
}

func (a *Allocator) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now().UTC()
}

// Assign binds an unassigned case to an officer: one new active primary
// assignment record, the officer's counters incremented, the case pointer
// set. The case document's __v is the serialization point; the update is a
// compare-and-set against the version the operator observed.
func (a *Allocator) Assign(ctx context.Context, req AssignRequest) (*AssignmentResult, error) {
	if req.OfficerID == "" {
		return nil, ErrNoOfficerSelected
	}

	complaint, err := a.loadOpenComplaint(ctx, req.CaseID)
	if err != nil {
		return nil, err
	}
	if complaint.Details.AssignedOfficerID != "" {
		return nil, ErrAlreadyAssigned
	}

	// availability is re-checked here at commit time; pool resolution and
	// commit are not instantaneous
	officer, err := a.loadAssignableOfficer(ctx, req.OfficerID)
	if err != nil {
		return nil, err
	}

	now := a.now()
	res, err := a.Complaints.UpdateOne(ctx,
		bson.M{"_id": req.CaseID, "__v": req.ObservedVersion},
		bson.M{
			"$set": bson.M{
				"complaint.assignedOfficerID": officer.ID,
				"complaint.assignedUnit":      officer.Details.UnitName,
				"complaint.updatedAt":         primitive.NewDateTimeFromTime(now),
			},
			"$inc": bson.M{"__v": 1},
		})
	if err != nil {
		return nil, err
	}
	if res == nil || res.ModifiedCount == 0 {
		return nil, a.conflict(ctx, req.CaseID)
	}

	recordID := uuid.New().String()
	if err := a.writeRecord(ctx, recordID, req.CaseID, officer.ID, req.ActorID, models.AssignmentPrimary, req.Notes, now); err != nil {
		// the case pointer is committed; the reconciliation sweep repairs
		// the missing record count, but this must be loud
		zap.S().Errorw("assignment committed but record write failed",
			"caseID", req.CaseID,
			"officerID", officer.ID,
			"error", err,
		)
		return nil, err
	}

	a.applyCounters(ctx, officer.ID, +1, now, officer.Details.ActiveCases+1)

	result := &AssignmentResult{
		CaseID:         req.CaseID,
		OfficerID:      officer.ID,
		RecordID:       recordID,
		AssignmentType: models.AssignmentPrimary,
		Version:        complaint.Version + 1,
		Event: AssignmentChangedEvent{
			EventID:      uuid.New().String(),
			CaseID:       req.CaseID,
			NewOfficerID: officer.ID,
			ActorID:      req.ActorID,
			Notes:        req.Notes,
			Timestamp:    now,
		},
	}
	a.emit(ctx, result.Event)
	return result, nil
}

// Reassign transfers the active primary assignment to a new officer as one
// compensating pair: the old officer's counter goes down, the new officer's
// goes up, the old record is marked superseded, and exactly one new record
// of type reassignment is written with the mandatory reason.
func (a *Allocator) Reassign(ctx context.Context, req ReassignRequest) (*AssignmentResult, error) {
	if req.NewOfficerID == "" {
		return nil, ErrNoOfficerSelected
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}

	complaint, err := a.loadOpenComplaint(ctx, req.CaseID)
	if err != nil {
		return nil, err
	}
	previousOfficerID := complaint.Details.AssignedOfficerID
	if previousOfficerID == "" {
		return nil, ErrNotAssigned
	}
	if previousOfficerID == req.NewOfficerID {
		return nil, ErrAlreadyAssigned
	}

	officer, err := a.loadAssignableOfficer(ctx, req.NewOfficerID)
	if err != nil {
		return nil, err
	}

	now := a.now()
	res, err := a.Complaints.UpdateOne(ctx,
		bson.M{"_id": req.CaseID, "__v": req.ObservedVersion},
		bson.M{
			"$set": bson.M{
				"complaint.assignedOfficerID": officer.ID,
				"complaint.assignedUnit":      officer.Details.UnitName,
				"complaint.updatedAt":         primitive.NewDateTimeFromTime(now),
			},
			"$inc": bson.M{"__v": 1},
		})
	if err != nil {
		return nil, err
	}
	if res == nil || res.ModifiedCount == 0 {
		return nil, a.conflict(ctx, req.CaseID)
	}

	recordID := uuid.New().String()
	if _, err := a.Records.UpdateMany(ctx,
		bson.M{"assignment.caseID": req.CaseID, "assignment.status": models.AssignmentActive},
		bson.M{"$set": bson.M{
			"assignment.status":       models.AssignmentSuperseded,
			"assignment.supersededBy": recordID,
		}}); err != nil {
		zap.S().Errorw("failed to supersede previous assignment records",
			"caseID", req.CaseID,
			"error", err,
		)
		return nil, err
	}
	if err := a.writeRecord(ctx, recordID, req.CaseID, officer.ID, req.ActorID, models.AssignmentReassignment, req.Reason, now); err != nil {
		zap.S().Errorw("reassignment committed but record write failed",
			"caseID", req.CaseID,
			"officerID", officer.ID,
			"error", err,
		)
		return nil, err
	}

	a.applyCounters(ctx, previousOfficerID, -1, time.Time{}, -1)
	a.applyCounters(ctx, officer.ID, +1, now, officer.Details.ActiveCases+1)

	result := &AssignmentResult{
		CaseID:            req.CaseID,
		OfficerID:         officer.ID,
		PreviousOfficerID: previousOfficerID,
		RecordID:          recordID,
		AssignmentType:    models.AssignmentReassignment,
		Version:           complaint.Version + 1,
		Event: AssignmentChangedEvent{
			EventID:      uuid.New().String(),
			CaseID:       req.CaseID,
			OldOfficerID: previousOfficerID,
			NewOfficerID: officer.ID,
			ActorID:      req.ActorID,
			Notes:        req.Reason,
			Timestamp:    now,
		},
	}
	a.emit(ctx, result.Event)
	return result, nil
}

func (a *Allocator) loadOpenComplaint(ctx context.Context, caseID string) (*models.Complaint, error) {
	complaint, err := a.Complaints.FindOne(ctx, bson.M{"_id": caseID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	if complaint.Closed() {
		return nil, ErrCaseClosed
	}
	return complaint, nil
}

func (a *Allocator) loadAssignableOfficer(ctx context.Context, officerID string) (*models.Officer, error) {
	officer, err := a.Officers.FindOne(ctx, bson.M{"_id": officerID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOfficerNotFound
		}
		return nil, err
	}
	if officer.Details.AvailabilityStatus == models.OfficerUnavailable {
		return nil, ErrOfficerUnavailable
	}
	return officer, nil
}

// conflict distinguishes why a compare-and-set matched nothing
func (a *Allocator) conflict(ctx context.Context, caseID string) error {
	current, err := a.Complaints.FindOne(ctx, bson.M{"_id": caseID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCaseNotFound
		}
		return ErrConcurrentModification
	}
	if current.Details.AssignedOfficerID != "" {
		zap.S().Infow("commit rejected, case was assigned by another actor",
			"caseID", caseID,
			"assignedOfficerID", current.Details.AssignedOfficerID,
		)
	}
	return ErrConcurrentModification
}

func (a *Allocator) writeRecord(ctx context.Context, recordID, caseID, officerID, actorID, assignmentType, notes string, now time.Time) error {
	record := bson.M{
		"_id": recordID,
		"assignment": models.AssignmentRecordDetails{
			CaseID:         caseID,
			OfficerID:      officerID,
			AssignedBy:     actorID,
			AssignmentType: assignmentType,
			Status:         models.AssignmentActive,
			Notes:          notes,
			CreatedAt:      primitive.NewDateTimeFromTime(now),
		},
		"__v": 0,
	}
	_, err := a.Records.InsertOne(ctx, record)
	return err
}

// applyCounters adjusts one officer's load counter after a committed case
// update. projected is the expected active-case count used to refresh the
// cached workload tier; pass a negative value to leave the cache for the
// reconciliation sweep.
func (a *Allocator) applyCounters(ctx context.Context, officerID string, delta int, lastAssignment time.Time, projected int) {
	inc := bson.M{"officer.activeCases": delta}
	if delta > 0 {
		inc["officer.totalCases"] = delta
	}
	set := bson.M{}
	if !lastAssignment.IsZero() {
		set["officer.lastAssignment"] = primitive.NewDateTimeFromTime(lastAssignment)
	}
	if projected >= 0 {
		set["officer.workloadLevel"] = Score(projected, a.Ceiling).String()
	}
	update := bson.M{"$inc": inc}
	if len(set) > 0 {
		update["$set"] = set
	}
	if _, err := a.Officers.UpdateOne(ctx, bson.M{"_id": officerID}, update); err != nil {
		// counter drift here is repaired by the scheduled reconciliation
		zap.S().Errorw("failed to update officer load counters",
			"officerID", officerID,
			"delta", delta,
			"error", err,
		)
	}
}

func (a *Allocator) emit(ctx context.Context, event AssignmentChangedEvent) {
	if a.Notifier == nil {
		return
	}
	if err := a.Notifier.AssignmentChanged(ctx, event); err != nil {
		zap.S().Warnw("assignment notification delivery failed",
			"caseID", event.CaseID,
			"eventID", event.EventID,
			"error", err,
		)
	}
}
