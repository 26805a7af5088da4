package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Assignment types
const (
	AssignmentPrimary      = "primary"
	AssignmentSecondary    = "secondary"
	AssignmentReassignment = "reassignment"
)

// Assignment record statuses. Records are append-only: an active record is
// never mutated except to be marked superseded by a later record.
const (
	AssignmentActive     = "active"
	AssignmentSuperseded = "superseded"
)

// AssignmentRecord holds the structure for the assignmentRecords collection
// in mongo
type AssignmentRecord struct {
	ID      string                  `json:"_id" bson:"_id"`
	Details AssignmentRecordDetails `json:"assignment" bson:"assignment"`
	Version int32                   `json:"__v" bson:"__v"`
}

// AssignmentRecordDetails holds the structure for the inner assignment
// structure as defined in the assignmentRecords collection in mongo
type AssignmentRecordDetails struct {
	CaseID         string             `json:"caseID" bson:"caseID"`
	OfficerID      string             `json:"officerID" bson:"officerID"`
	AssignedBy     string             `json:"assignedBy" bson:"assignedBy"`
	AssignmentType string             `json:"assignmentType" bson:"assignmentType"`
	Status         string             `json:"status" bson:"status"`
	Notes          string             `json:"notes" bson:"notes"`
	SupersededBy   string             `json:"supersededBy,omitempty" bson:"supersededBy,omitempty"`
	CreatedAt      primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
