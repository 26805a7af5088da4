package models

// Complaint statuses. Resolved and Dismissed are terminal: assignment
// becomes immutable once a complaint reaches either.
const (
	ComplaintPending       = "pending"
	ComplaintUnderReview   = "under_review"
	ComplaintInvestigating = "investigating"
	ComplaintResolved      = "resolved"
	ComplaintDismissed     = "dismissed"
)

// Complaint holds the structure for the complaint collection in mongo.
// Version (__v) doubles as the assignment version: every successful
// assign/reassign increments it, and commits are rejected when the version
// the operator observed no longer matches.
type Complaint struct {
	ID      string           `json:"_id" bson:"_id"`
	Details ComplaintDetails `json:"complaint" bson:"complaint"`
	Version int32            `json:"__v" bson:"__v"`
}

// ComplaintDetails holds the structure for the inner complaint structure as
// defined in the complaint collection in mongo
type ComplaintDetails struct {
	ComplaintNumber   string      `json:"complaintNumber" bson:"complaintNumber"`
	ComplainantName   string      `json:"complainantName" bson:"complainantName"`
	Description       string      `json:"description" bson:"description"`
	CrimeType         string      `json:"crimeType" bson:"crimeType"`
	Category          string      `json:"category" bson:"category"`
	Priority          string      `json:"priority" bson:"priority"`
	UnitID            string      `json:"unitID" bson:"unitID"`
	AssignedUnit      string      `json:"assignedUnit" bson:"assignedUnit"`
	AssignedOfficerID string      `json:"assignedOfficerID,omitempty" bson:"assignedOfficerID,omitempty"`
	Status            string      `json:"status" bson:"status"`
	CreatedAt         interface{} `json:"createdAt" bson:"createdAt"`
	UpdatedAt         interface{} `json:"updatedAt" bson:"updatedAt"`
}

// Closed reports whether the complaint has reached a terminal status
func (c Complaint) Closed() bool {
	return c.Details.Status == ComplaintResolved || c.Details.Status == ComplaintDismissed
}
