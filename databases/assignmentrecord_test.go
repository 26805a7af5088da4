package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Pinoccchio/LawbotWeb-sub002/config"
	"github.com/Pinoccchio/LawbotWeb-sub002/databases"
	"github.com/Pinoccchio/LawbotWeb-sub002/databases/mocks"
	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

func TestNewAssignmentRecordDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	recordDB := databases.NewAssignmentRecordDatabase(db)

	assert.NotEmpty(t, recordDB)
}

func TestAssignmentRecordDatabase_Find(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var curHelperErr databases.CursorHelper
	var curHelperCorrect databases.CursorHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	curHelperErr = &mocks.CursorHelper{}
	curHelperCorrect = &mocks.CursorHelper{}

	curHelperErr.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	curHelperCorrect.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.AssignmentRecord)
		(*arg) = []models.AssignmentRecord{{ID: "mocked-record"}}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": true}).
		Return(curHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": false}).
		Return(curHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "assignmentRecords").Return(collectionHelper)

	// Create new database with mocked Database interface
	recordDba := databases.NewAssignmentRecordDatabase(dbHelper)

	// Call method with defined filter, that in our mocked function returns
	// mocked-error
	records, err := recordDba.Find(context.Background(), bson.M{"error": true})

	assert.Empty(t, records)
	assert.EqualError(t, err, "mocked-error")

	// Now call the same function with different different filter for correct
	// result
	records, err = recordDba.Find(context.Background(), bson.M{"error": false})

	assert.Equal(t, []models.AssignmentRecord{{ID: "mocked-record"}}, records)
	assert.NoError(t, err)
}

func TestAssignmentRecordDatabase_InsertOne(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), bson.M{"error": true}).
		Return(nil, errors.New("mocked-error"))

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), bson.M{"error": false}).
		Return(nil, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "assignmentRecords").Return(collectionHelper)

	recordDba := databases.NewAssignmentRecordDatabase(dbHelper)

	_, err := recordDba.InsertOne(context.Background(), bson.M{"error": true})

	assert.EqualError(t, err, "mocked-error")

	_, err = recordDba.InsertOne(context.Background(), bson.M{"error": false})

	assert.NoError(t, err)
}

func TestAssignmentRecordDatabase_UpdateMany(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateMany", context.Background(),
			bson.M{"assignment.caseID": "case-1", "assignment.status": "active"},
			mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "assignmentRecords").Return(collectionHelper)

	recordDba := databases.NewAssignmentRecordDatabase(dbHelper)

	res, err := recordDba.UpdateMany(context.Background(),
		bson.M{"assignment.caseID": "case-1", "assignment.status": "active"},
		bson.M{"$set": bson.M{"assignment.status": "superseded"}})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)
}

func TestAssignmentRecordDatabase_CountDocuments(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("CountDocuments", context.Background(),
			bson.M{"assignment.officerID": "officer-1", "assignment.status": "active"}).
		Return(int64(2), nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "assignmentRecords").Return(collectionHelper)

	recordDba := databases.NewAssignmentRecordDatabase(dbHelper)

	count, err := recordDba.CountDocuments(context.Background(),
		bson.M{"assignment.officerID": "officer-1", "assignment.status": "active"})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
