package models

// Account holds the structure for the portal account collection in mongo.
// Accounts exist only so the auth middleware can validate callers; account
// management itself lives in the personnel collaborator.
type Account struct {
	ID      string         `json:"_id" bson:"_id"`
	Details AccountDetails `json:"account" bson:"account"`
	Version int32          `json:"__v" bson:"__v"`
}

// AccountDetails holds the structure for the inner account structure as
// defined in the account collection in mongo
type AccountDetails struct {
	Email     string      `json:"email" bson:"email"`
	Name      string      `json:"name" bson:"name"`
	Password  string      `json:"password" bson:"password"`
	Role      string      `json:"role" bson:"role"`
	OfficerID string      `json:"officerID,omitempty" bson:"officerID,omitempty"`
	CreatedAt interface{} `json:"createdAt" bson:"createdAt"`
	UpdatedAt interface{} `json:"updatedAt" bson:"updatedAt"`
}
