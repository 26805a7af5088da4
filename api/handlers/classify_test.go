package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pinoccchio/LawbotWeb-sub002/allocation"
	"github.com/Pinoccchio/LawbotWeb-sub002/api/handlers"
	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

func TestClassify_CrimeTypesHandler(t *testing.T) {
	c := handlers.Classify{Classifier: allocation.NewClassifier(models.CrimeTypeTable)}

	req, err := http.NewRequest("GET", "/api/v1/crime-types", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CrimeTypesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var table []models.CrimeTypeMapping
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &table))
	assert.Equal(t, len(models.CrimeTypeTable), len(table))
}

func TestClassify_ClassifyHandler(t *testing.T) {
	c := handlers.Classify{Classifier: allocation.NewClassifier(models.CrimeTypeTable)}

	req, err := http.NewRequest("GET", "/api/v1/classify?crimeType=Phishing", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.ClassifyHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var classification allocation.Classification
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &classification))
	assert.Equal(t, models.CategoryCommunication, classification.Category)
	assert.False(t, classification.LowConfidence)
}

func TestClassify_ClassifyHandlerFuzzy(t *testing.T) {
	c := handlers.Classify{Classifier: allocation.NewClassifier(models.CrimeTypeTable)}

	req, err := http.NewRequest("GET", "/api/v1/classify?crimeType=Phishing+Scam+Email", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.ClassifyHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var classification allocation.Classification
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &classification))
	assert.Equal(t, models.CategoryCommunication, classification.Category)
	assert.True(t, classification.LowConfidence)
}

func TestClassify_ClassifyHandlerUnclassified(t *testing.T) {
	c := handlers.Classify{Classifier: allocation.NewClassifier(models.CrimeTypeTable)}

	req, err := http.NewRequest("GET", "/api/v1/classify?crimeType=zzzqqq", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.ClassifyHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var errResp models.ErrorMessageResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	assert.Equal(t, "failed to classify crime type", errResp.Response.Message)
}
