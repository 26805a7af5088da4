package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

const notificationCollection = "notifications"

// NotificationDatabase contains the methods to use with the notification
// collection
type NotificationDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Notification, error)
	InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error)
}

type notificationDatabase struct {
	db DatabaseHelper
}

// NewNotificationDatabase initializes a new instance of notification database
// with the provided db connection
func NewNotificationDatabase(db DatabaseHelper) NotificationDatabase {
	return &notificationDatabase{
		db: db,
	}
}

func (n *notificationDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Notification, error) {
	var notifications []models.Notification
	err := n.db.Collection(notificationCollection).Find(ctx, filter, opts...).Decode(&notifications)
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (n *notificationDatabase) InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error) {
	return n.db.Collection(notificationCollection).InsertOne(ctx, document)
}
