package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Pinoccchio/LawbotWeb-sub002/allocation"
	"github.com/Pinoccchio/LawbotWeb-sub002/api/handlers"
	"github.com/Pinoccchio/LawbotWeb-sub002/databases/mocks"
	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

func newAssignmentHandler(t *testing.T) (handlers.Assignment, *mocks.ComplaintDatabase, *mocks.OfficerDatabase, *mocks.AssignmentRecordDatabase) {
	cdb := mocks.NewComplaintDatabase(t)
	odb := mocks.NewOfficerDatabase(t)
	rdb := mocks.NewAssignmentRecordDatabase(t)

	a := handlers.Assignment{
		Allocator: &allocation.Allocator{
			Complaints: cdb,
			Officers:   odb,
			Records:    rdb,
			Clock:      func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) },
			Ceiling:    15,
		},
		Resolver: allocation.PoolResolver{
			ODB:     odb,
			Table:   models.CrimeTypeTable,
			Ceiling: 15,
		},
		Engine: allocation.SuggestionEngine{},
		Retry:  allocation.RetryPolicy{MaxAttempts: 2, Backoff: time.Millisecond},
		CDB:    cdb,
		ADB:    rdb,
	}
	return a, cdb, odb, rdb
}

func TestAssignment_CandidatesHandler(t *testing.T) {
	a, _, odb, _ := newAssignmentHandler(t)

	odb.On("Find", mock.Anything, mock.Anything).Return([]models.Officer{
		{ID: "officer-1", Details: models.OfficerDetails{UnitID: "unit-cyber", ActiveCases: 2, AvailabilityStatus: models.OfficerAvailable}},
		{ID: "officer-2", Details: models.OfficerDetails{UnitID: "unit-cyber", ActiveCases: 14, AvailabilityStatus: models.OfficerBusy}},
	}, nil)

	req, err := http.NewRequest("GET", "/api/v1/units/unit-cyber/candidates", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"unit_id": "unit-cyber"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.CandidatesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var candidates []allocation.OfficerCandidate
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &candidates))
	assert.Len(t, candidates, 2)
	assert.Equal(t, "officer-1", candidates[0].Officer.ID)
	assert.Equal(t, allocation.WorkloadLow, candidates[0].Workload)
	assert.Equal(t, allocation.WorkloadHigh, candidates[1].Workload)
}

func TestAssignment_CandidatesHandlerRetriesExhausted(t *testing.T) {
	a, _, odb, _ := newAssignmentHandler(t)

	odb.On("Find", mock.Anything, mock.Anything).Return(nil, mongo.ErrClientDisconnected)

	req, err := http.NewRequest("GET", "/api/v1/units/unit-cyber/candidates", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"unit_id": "unit-cyber"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.CandidatesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	odb.AssertNumberOfCalls(t, "Find", 2)
}

func TestAssignment_SuggestionHandler(t *testing.T) {
	a, cdb, odb, _ := newAssignmentHandler(t)

	cdb.On("FindOne", mock.Anything, mock.Anything).Return(&models.Complaint{
		ID: "case-1",
		Details: models.ComplaintDetails{
			UnitID:   "unit-cyber",
			Category: models.CategoryCommunication,
			Status:   models.ComplaintPending,
		},
		Version: 7,
	}, nil)

	odb.On("Find", mock.Anything, mock.Anything).Return([]models.Officer{
		{ID: "officer-busy", Details: models.OfficerDetails{ActiveCases: 12, AvailabilityStatus: models.OfficerBusy}},
		{ID: "officer-free", Details: models.OfficerDetails{ActiveCases: 1, AvailabilityStatus: models.OfficerAvailable}},
	}, nil)

	req, err := http.NewRequest("GET", "/api/v1/complaints/case-1/suggestion", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": "case-1"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.SuggestionHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		ComplaintID string                        `json:"complaintID"`
		Version     int32                         `json:"version"`
		Suggestion  *allocation.OfficerCandidate  `json:"suggestion"`
		Candidates  []allocation.OfficerCandidate `json:"candidates"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "case-1", body.ComplaintID)
	assert.Equal(t, int32(7), body.Version)
	assert.Equal(t, "officer-free", body.Suggestion.Officer.ID)
	assert.Len(t, body.Candidates, 2)
}

func TestAssignment_SuggestionHandlerComplaintNotFound(t *testing.T) {
	a, cdb, _, _ := newAssignmentHandler(t)

	cdb.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	req, err := http.NewRequest("GET", "/api/v1/complaints/missing/suggestion", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": "missing"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.SuggestionHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAssignment_AssignHandler(t *testing.T) {
	a, cdb, odb, rdb := newAssignmentHandler(t)

	cdb.On("FindOne", mock.Anything, mock.Anything).Return(&models.Complaint{
		ID:      "case-1",
		Details: models.ComplaintDetails{Status: models.ComplaintPending},
		Version: 2,
	}, nil)
	odb.On("FindOne", mock.Anything, mock.Anything).Return(&models.Officer{
		ID:      "officer-7",
		Details: models.OfficerDetails{UnitName: "Cyber Crime Cell", ActiveCases: 3, AvailabilityStatus: models.OfficerAvailable},
	}, nil)
	cdb.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
	rdb.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	odb.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{ModifiedCount: 1}, nil)

	payload, _ := json.Marshal(allocation.AssignRequest{
		OfficerID:       "officer-7",
		ActorID:         "admin-1",
		ObservedVersion: 2,
	})
	req, err := http.NewRequest("POST", "/api/v1/complaints/case-1/assign", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": "case-1"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.AssignHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var body struct {
		Message    string                       `json:"message"`
		Assignment *allocation.AssignmentResult `json:"assignment"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Officer assigned successfully", body.Message)
	assert.Equal(t, "case-1", body.Assignment.CaseID)
	assert.Equal(t, "officer-7", body.Assignment.OfficerID)
	assert.Equal(t, int32(3), body.Assignment.Version)
}

func TestAssignment_AssignHandlerVersionConflict(t *testing.T) {
	a, cdb, odb, _ := newAssignmentHandler(t)

	cdb.On("FindOne", mock.Anything, mock.Anything).Return(&models.Complaint{
		ID:      "case-1",
		Details: models.ComplaintDetails{Status: models.ComplaintPending},
		Version: 5,
	}, nil)
	odb.On("FindOne", mock.Anything, mock.Anything).Return(&models.Officer{
		ID:      "officer-7",
		Details: models.OfficerDetails{AvailabilityStatus: models.OfficerAvailable},
	}, nil)
	cdb.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0, ModifiedCount: 0}, nil)

	payload, _ := json.Marshal(allocation.AssignRequest{OfficerID: "officer-7", ObservedVersion: 4})
	req, err := http.NewRequest("POST", "/api/v1/complaints/case-1/assign", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": "case-1"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.AssignHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)

	var errResp models.ErrorMessageResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	assert.Equal(t, "failed to assign officer", errResp.Response.Message)
}

func TestAssignment_AssignHandlerBadBody(t *testing.T) {
	a, _, _, _ := newAssignmentHandler(t)

	req, err := http.NewRequest("POST", "/api/v1/complaints/case-1/assign", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": "case-1"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.AssignHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAssignment_ReassignHandlerReasonRequired(t *testing.T) {
	a, _, _, _ := newAssignmentHandler(t)

	payload, _ := json.Marshal(allocation.ReassignRequest{NewOfficerID: "officer-7"})
	req, err := http.NewRequest("POST", "/api/v1/complaints/case-1/reassign", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": "case-1"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.ReassignHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var errResp models.ErrorMessageResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	assert.Equal(t, "reassignment requires a reason", errResp.Response.Error)
}

func TestAssignment_ReassignHandlerNotAssigned(t *testing.T) {
	a, cdb, _, _ := newAssignmentHandler(t)

	cdb.On("FindOne", mock.Anything, mock.Anything).Return(&models.Complaint{
		ID:      "case-1",
		Details: models.ComplaintDetails{Status: models.ComplaintPending},
	}, nil)

	payload, _ := json.Marshal(allocation.ReassignRequest{NewOfficerID: "officer-7", Reason: "rebalancing"})
	req, err := http.NewRequest("POST", "/api/v1/complaints/case-1/reassign", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": "case-1"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.ReassignHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAssignment_AssignmentHistoryHandler(t *testing.T) {
	a, _, _, rdb := newAssignmentHandler(t)

	rdb.On("Find", mock.Anything, mock.Anything).Return([]models.AssignmentRecord{
		{ID: "rec-2", Details: models.AssignmentRecordDetails{CaseID: "case-1", AssignmentType: models.AssignmentReassignment, Status: models.AssignmentActive}},
		{ID: "rec-1", Details: models.AssignmentRecordDetails{CaseID: "case-1", AssignmentType: models.AssignmentPrimary, Status: models.AssignmentSuperseded, SupersededBy: "rec-2"}},
	}, nil)

	req, err := http.NewRequest("GET", "/api/v1/complaints/case-1/assignments", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": "case-1"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.AssignmentHistoryHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var records []models.AssignmentRecord
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	assert.Len(t, records, 2)
	assert.Equal(t, "rec-2", records[0].ID)
	assert.Equal(t, "rec-2", records[1].Details.SupersededBy)
}

func TestAssignment_AssignmentHistoryHandlerEmpty(t *testing.T) {
	a, _, _, rdb := newAssignmentHandler(t)

	rdb.On("Find", mock.Anything, mock.Anything).Return(nil, nil)

	req, err := http.NewRequest("GET", "/api/v1/complaints/case-1/assignments", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": "case-1"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.AssignmentHistoryHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}
