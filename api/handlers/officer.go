package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Pinoccchio/LawbotWeb-sub002/allocation"
	"github.com/Pinoccchio/LawbotWeb-sub002/api"
	"github.com/Pinoccchio/LawbotWeb-sub002/config"
	"github.com/Pinoccchio/LawbotWeb-sub002/databases"
	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

// Officer exported for testing purposes
type Officer struct {
	DB      databases.OfficerDatabase
	Ceiling int
}

// OfficersHandler returns officers, optionally filtered by unit. The
// workload tier on each officer is recomputed from the live counter, never
// trusted from the stored projection.
func (o Officer) OfficersHandler(w http.ResponseWriter, r *http.Request) {
	unitID := r.URL.Query().Get("unit_id")
	zap.S().Debugf("unit_id: '%v'", unitID)

	filter := bson.M{}
	if unitID != "" && unitID != "null" && unitID != "undefined" {
		filter["officer.unitID"] = unitID
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := o.DB.Find(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to get officers", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Officer{}
	}
	for i := range dbResp {
		dbResp[i].Details.WorkloadLevel = allocation.Score(dbResp[i].Details.ActiveCases, o.Ceiling).String()
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// OfficerByIDHandler returns an officer by ID
func (o Officer) OfficerByIDHandler(w http.ResponseWriter, r *http.Request) {
	officerID := mux.Vars(r)["officer_id"]
	zap.S().Debugf("officer_id: %v", officerID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := o.DB.FindOne(ctx, bson.M{"_id": officerID})
	if err != nil {
		status := http.StatusNotFound
		if !errors.Is(err, mongo.ErrNoDocuments) {
			status = http.StatusInternalServerError
		}
		config.ErrorStatus("failed to get officer by ID", status, w, err)
		return
	}
	dbResp.Details.WorkloadLevel = allocation.Score(dbResp.Details.ActiveCases, o.Ceiling).String()

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateAvailabilityHandler sets an officer's availability status. Owned by
// personnel management in the full product; exposed here because the
// assignment dialog lets a supervisor pull an officer out of rotation.
func (o Officer) UpdateAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	officerID := mux.Vars(r)["officer_id"]

	var requestBody struct {
		AvailabilityStatus string `json:"availabilityStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	switch requestBody.AvailabilityStatus {
	case models.OfficerAvailable, models.OfficerBusy, models.OfficerOverloaded, models.OfficerUnavailable:
	default:
		config.ErrorStatus("invalid availability status", http.StatusBadRequest, w, errors.New(requestBody.AvailabilityStatus))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := o.DB.UpdateOne(ctx,
		bson.M{"_id": officerID},
		bson.M{"$set": bson.M{
			"officer.availabilityStatus": requestBody.AvailabilityStatus,
			"officer.updatedAt":          primitive.NewDateTimeFromTime(timeNow()),
		}})
	if err != nil {
		config.ErrorStatus("failed to update officer availability", http.StatusInternalServerError, w, err)
		return
	}
	if res != nil && res.MatchedCount == 0 {
		config.ErrorStatus("failed to get officer by ID", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":            "Availability updated successfully",
		"officerID":          officerID,
		"availabilityStatus": requestBody.AvailabilityStatus,
	})
}
