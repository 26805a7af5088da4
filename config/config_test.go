package config

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	os.Unsetenv("WORKLOAD_CEILING")
	os.Unsetenv("RETRY_MAX_ATTEMPTS")
	os.Unsetenv("RETRY_BACKOFF_MS")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, DefaultWorkloadCeiling, conf.WorkloadCeiling)
	assert.Equal(t, DefaultRetryAttempts, conf.RetryAttempts)
	assert.Equal(t, DefaultRetryBackoff, conf.RetryBackoff)
}

func TestNewEngineTuning(t *testing.T) {
	os.Setenv("WORKLOAD_CEILING", "20")
	os.Setenv("RETRY_MAX_ATTEMPTS", "5")
	os.Setenv("RETRY_BACKOFF_MS", "100")
	defer func() {
		os.Unsetenv("WORKLOAD_CEILING")
		os.Unsetenv("RETRY_MAX_ATTEMPTS")
		os.Unsetenv("RETRY_BACKOFF_MS")
	}()
	conf := New()

	assert.Equal(t, 20, conf.WorkloadCeiling)
	assert.Equal(t, 5, conf.RetryAttempts)
	assert.Equal(t, 100*time.Millisecond, conf.RetryBackoff)
}

func TestNewInvalidTuningFallsBack(t *testing.T) {
	os.Setenv("WORKLOAD_CEILING", "zero")
	os.Setenv("RETRY_MAX_ATTEMPTS", "-3")
	defer func() {
		os.Unsetenv("WORKLOAD_CEILING")
		os.Unsetenv("RETRY_MAX_ATTEMPTS")
	}()
	conf := New()

	assert.Equal(t, DefaultWorkloadCeiling, conf.WorkloadCeiling)
	assert.Equal(t, DefaultRetryAttempts, conf.RetryAttempts)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()

	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp models.ErrorMessageResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "error it borked", resp.Response.Message)
	assert.Equal(t, "bad request", resp.Response.Error)
}

func TestErrorStatusNilError(t *testing.T) {
	rr := httptest.NewRecorder()

	ErrorStatus("error it borked", http.StatusInternalServerError, rr, nil)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp models.ErrorMessageResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.Response.Error)
}
