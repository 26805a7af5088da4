package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Notification holds the structure for the notification collection in mongo
type Notification struct {
	ID      string              `json:"_id" bson:"_id"`
	Details NotificationDetails `json:"notification" bson:"notification"`
	Version int32               `json:"__v" bson:"__v"`
}

// NotificationDetails holds the structure for the inner notification
// structure as defined in the notification collection in mongo
type NotificationDetails struct {
	RecipientID string             `json:"recipientID" bson:"recipientID"`
	CaseID      string             `json:"caseID" bson:"caseID"`
	Event       string             `json:"event" bson:"event"`
	Message     string             `json:"message" bson:"message"`
	Read        bool               `json:"read" bson:"read"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
