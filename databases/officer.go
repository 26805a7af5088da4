package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

const officerCollection = "officers"

// OfficerDatabase contains the methods to use with the officer collection
type OfficerDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Officer, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Officer, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type officerDatabase struct {
	db DatabaseHelper
}

// NewOfficerDatabase initializes a new instance of officer database with the
// provided db connection
func NewOfficerDatabase(db DatabaseHelper) OfficerDatabase {
	return &officerDatabase{
		db: db,
	}
}

func (o *officerDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Officer, error) {
	officer := &models.Officer{}
	err := o.db.Collection(officerCollection).FindOne(ctx, filter).Decode(&officer)
	if err != nil {
		return nil, err
	}
	return officer, nil
}

func (o *officerDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Officer, error) {
	var officers []models.Officer
	err := o.db.Collection(officerCollection).Find(ctx, filter, opts...).Decode(&officers)
	if err != nil {
		return nil, err
	}
	return officers, nil
}

func (o *officerDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return o.db.Collection(officerCollection).UpdateOne(ctx, filter, update, opts...)
}

func (o *officerDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return o.db.Collection(officerCollection).CountDocuments(ctx, filter, opts...)
}
