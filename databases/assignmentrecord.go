package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

const assignmentRecordCollection = "assignmentRecords"

// AssignmentRecordDatabase contains the methods to use with the
// assignmentRecords collection
type AssignmentRecordDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.AssignmentRecord, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.AssignmentRecord, error)
	InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error)
	UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type assignmentRecordDatabase struct {
	db DatabaseHelper
}

// NewAssignmentRecordDatabase initializes a new instance of assignment record
// database with the provided db connection
func NewAssignmentRecordDatabase(db DatabaseHelper) AssignmentRecordDatabase {
	return &assignmentRecordDatabase{
		db: db,
	}
}

func (a *assignmentRecordDatabase) FindOne(ctx context.Context, filter interface{}) (*models.AssignmentRecord, error) {
	record := &models.AssignmentRecord{}
	err := a.db.Collection(assignmentRecordCollection).FindOne(ctx, filter).Decode(&record)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (a *assignmentRecordDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.AssignmentRecord, error) {
	var records []models.AssignmentRecord
	err := a.db.Collection(assignmentRecordCollection).Find(ctx, filter, opts...).Decode(&records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *assignmentRecordDatabase) InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error) {
	return a.db.Collection(assignmentRecordCollection).InsertOne(ctx, document)
}

func (a *assignmentRecordDatabase) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return a.db.Collection(assignmentRecordCollection).UpdateMany(ctx, filter, update, opts...)
}

func (a *assignmentRecordDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return a.db.Collection(assignmentRecordCollection).CountDocuments(ctx, filter, opts...)
}
