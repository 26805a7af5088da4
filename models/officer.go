package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Officer availability statuses as stored in the officers collection
const (
	OfficerAvailable   = "available"
	OfficerBusy        = "busy"
	OfficerOverloaded  = "overloaded"
	OfficerUnavailable = "unavailable"
)

// Officer holds the structure for the officer collection in mongo
type Officer struct {
	ID      string         `json:"_id" bson:"_id"`
	Details OfficerDetails `json:"officer" bson:"officer"`
	Version int32          `json:"__v" bson:"__v"`
}

// OfficerDetails holds the structure for the inner officer structure as
// defined in the officer collection in mongo. The counters are owned by
// personnel management; this service only reads them and applies
// increments/decrements as assignments change.
type OfficerDetails struct {
	Name               string             `json:"name" bson:"name"`
	BadgeNumber        string             `json:"badgeNumber" bson:"badgeNumber"`
	Rank               string             `json:"rank" bson:"rank"`
	Email              string             `json:"email" bson:"email"`
	UnitID             string             `json:"unitID" bson:"unitID"`
	UnitName           string             `json:"unitName" bson:"unitName"`
	ActiveCases        int                `json:"activeCases" bson:"activeCases"`
	TotalCases         int                `json:"totalCases" bson:"totalCases"`
	ResolvedCases      int                `json:"resolvedCases" bson:"resolvedCases"`
	WorkloadLevel      string             `json:"workloadLevel" bson:"workloadLevel"` // cached projection, recomputed on read
	AvailabilityStatus string             `json:"availabilityStatus" bson:"availabilityStatus"`
	LastAssignment     primitive.DateTime `json:"lastAssignment" bson:"lastAssignment"`
	CreatedAt          interface{}        `json:"createdAt" bson:"createdAt"`
	UpdatedAt          interface{}        `json:"updatedAt" bson:"updatedAt"`
}
