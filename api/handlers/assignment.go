package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Pinoccchio/LawbotWeb-sub002/allocation"
	"github.com/Pinoccchio/LawbotWeb-sub002/api"
	"github.com/Pinoccchio/LawbotWeb-sub002/config"
	"github.com/Pinoccchio/LawbotWeb-sub002/databases"
	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

// Assignment exposes the assignment engine over HTTP
type Assignment struct {
	Allocator *allocation.Allocator
	Resolver  allocation.PoolResolver
	Engine    allocation.SuggestionEngine
	Retry     allocation.RetryPolicy
	CDB       databases.ComplaintDatabase
	ADB       databases.AssignmentRecordDatabase
}

// CandidatesHandler returns the eligible officer pool for a unit, each with
// a freshly computed workload tier
func (a Assignment) CandidatesHandler(w http.ResponseWriter, r *http.Request) {
	unitID := mux.Vars(r)["unit_id"]
	category := r.URL.Query().Get("category")
	zap.S().Debugf("unit_id: '%v' category: '%v'", unitID, category)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	candidates, err := a.resolveWithRetry(ctx, unitID, category)
	if err != nil {
		writeEngineError("failed to resolve candidates", w, err)
		return
	}

	b, err := json.Marshal(candidates)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SuggestionHandler returns the default officer selection for a complaint
// along with the ranked pool it was chosen from
func (a Assignment) SuggestionHandler(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["complaint_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	complaint, err := a.CDB.FindOne(ctx, bson.M{"_id": complaintID})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, mongo.ErrNoDocuments) {
			status = http.StatusNotFound
		}
		config.ErrorStatus("failed to get complaint by ID", status, w, err)
		return
	}

	candidates, err := a.resolveWithRetry(ctx, complaint.Details.UnitID, complaint.Details.Category)
	if err != nil {
		writeEngineError("failed to resolve candidates", w, err)
		return
	}

	suggestion := a.Engine.Suggest(ctx, candidates)

	b, err := json.Marshal(map[string]interface{}{
		"complaintID": complaintID,
		"version":     complaint.Version,
		"suggestion":  suggestion,
		"candidates":  candidates,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AssignHandler commits a primary assignment for an unassigned complaint
func (a Assignment) AssignHandler(w http.ResponseWriter, r *http.Request) {
	var req allocation.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	req.CaseID = mux.Vars(r)["complaint_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	result, err := a.Allocator.Assign(ctx, req)
	if err != nil {
		writeEngineError("failed to assign officer", w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":    "Officer assigned successfully",
		"assignment": result,
	})
}

// ReassignHandler transfers the primary assignment to a new officer
func (a Assignment) ReassignHandler(w http.ResponseWriter, r *http.Request) {
	var req allocation.ReassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	req.CaseID = mux.Vars(r)["complaint_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	result, err := a.Allocator.Reassign(ctx, req)
	if err != nil {
		writeEngineError("failed to reassign officer", w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":    "Officer reassigned successfully",
		"assignment": result,
	})
}

// AssignmentHistoryHandler returns the append-only audit trail for a
// complaint, newest first
func (a Assignment) AssignmentHistoryHandler(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["complaint_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	records, err := a.ADB.Find(ctx, bson.M{"assignment.caseID": complaintID})
	if err != nil {
		config.ErrorStatus("failed to get assignment records", http.StatusNotFound, w, err)
		return
	}
	if len(records) == 0 {
		records = []models.AssignmentRecord{}
	}

	b, err := json.Marshal(records)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (a Assignment) resolveWithRetry(ctx context.Context, unitID, category string) ([]allocation.OfficerCandidate, error) {
	var candidates []allocation.OfficerCandidate
	err := a.Retry.Do(ctx, "resolve candidates", func(ctx context.Context) error {
		var resolveErr error
		candidates, resolveErr = a.Resolver.ResolveCandidates(ctx, unitID, category)
		return resolveErr
	})
	return candidates, err
}

// writeEngineError maps engine errors onto the status codes the frontend
// keys off of: validation 400, missing 404, conflicts 409, exhausted
// retries 503.
func writeEngineError(message string, w http.ResponseWriter, err error) {
	var maxRetries *allocation.MaxRetriesError
	switch {
	case errors.Is(err, allocation.ErrNoOfficerSelected),
		errors.Is(err, allocation.ErrReasonRequired),
		errors.Is(err, allocation.ErrUnclassifiedCrimeType):
		config.ErrorStatus(message, http.StatusBadRequest, w, err)
	case errors.Is(err, allocation.ErrCaseNotFound),
		errors.Is(err, allocation.ErrOfficerNotFound):
		config.ErrorStatus(message, http.StatusNotFound, w, err)
	case errors.Is(err, allocation.ErrAlreadyAssigned),
		errors.Is(err, allocation.ErrNotAssigned),
		errors.Is(err, allocation.ErrOfficerUnavailable),
		errors.Is(err, allocation.ErrConcurrentModification),
		errors.Is(err, allocation.ErrCaseClosed):
		config.ErrorStatus(message, http.StatusConflict, w, err)
	case errors.As(err, &maxRetries):
		config.ErrorStatus(message, http.StatusServiceUnavailable, w, err)
	default:
		config.ErrorStatus(message, http.StatusInternalServerError, w, err)
	}
}
