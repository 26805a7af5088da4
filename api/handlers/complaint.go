package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Pinoccchio/LawbotWeb-sub002/allocation"
	"github.com/Pinoccchio/LawbotWeb-sub002/api"
	"github.com/Pinoccchio/LawbotWeb-sub002/config"
	"github.com/Pinoccchio/LawbotWeb-sub002/databases"
)

// overridable in tests
var timeNow = time.Now

// Complaint exported for testing purposes
type Complaint struct {
	DB         databases.ComplaintDatabase
	Classifier *allocation.Classifier
}

// ComplaintByIDHandler returns a complaint by ID. The returned __v is the
// assignment version the frontend must echo back on assign/reassign.
func (c Complaint) ComplaintByIDHandler(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["complaint_id"]
	zap.S().Debugf("complaint_id: %v", complaintID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.DB.FindOne(ctx, bson.M{"_id": complaintID})
	if err != nil {
		status := http.StatusNotFound
		if !errors.Is(err, mongo.ErrNoDocuments) {
			status = http.StatusInternalServerError
		}
		config.ErrorStatus("failed to get complaint by ID", status, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateComplaintHandler records a new complaint from intake. The crime
// type is classified on the way in so the complaint lands with a category
// and a recommended unit; unclassifiable input is accepted with an empty
// category, which forces manual selection in the assignment dialog.
func (c Complaint) CreateComplaintHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		ComplaintNumber string `json:"complaintNumber"`
		ComplainantName string `json:"complainantName"`
		Description     string `json:"description"`
		CrimeType       string `json:"crimeType"`
		Priority        string `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	category := ""
	assignedUnit := ""
	lowConfidence := false
	if c.Classifier != nil {
		classification, err := c.Classifier.Classify(requestBody.CrimeType)
		switch {
		case errors.Is(err, allocation.ErrUnclassifiedCrimeType):
			zap.S().Warnw("complaint recorded without a category, manual selection required",
				"crimeType", requestBody.CrimeType)
		case err != nil:
			config.ErrorStatus("failed to classify crime type", http.StatusInternalServerError, w, err)
			return
		default:
			category = classification.Category
			assignedUnit = classification.RecommendedUnit
			lowConfidence = classification.LowConfidence
		}
	}

	now := primitive.NewDateTimeFromTime(timeNow())
	newComplaint := bson.M{
		"_id": primitive.NewObjectID().Hex(),
		"complaint": bson.M{
			"complaintNumber": requestBody.ComplaintNumber,
			"complainantName": requestBody.ComplainantName,
			"description":     requestBody.Description,
			"crimeType":       requestBody.CrimeType,
			"category":        category,
			"priority":        requestBody.Priority,
			"assignedUnit":    assignedUnit,
			"status":          "pending",
			"createdAt":       now,
			"updatedAt":       now,
		},
		"__v": 0,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	_, err := c.DB.InsertOne(ctx, newComplaint)
	if err != nil {
		config.ErrorStatus("failed to create complaint", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":       "Complaint created successfully",
		"complaint":     newComplaint,
		"lowConfidence": lowConfidence,
	})
}
