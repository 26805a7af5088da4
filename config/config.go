package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

// Engine tuning defaults, used when the matching env vars are unset
const (
	DefaultWorkloadCeiling = 15
	DefaultRetryAttempts   = 3
	DefaultRetryBackoff    = 250 * time.Millisecond
)

// Config holds the project config values
type Config struct {
	URL             string
	DatabaseName    string
	BaseURL         string
	Port            string
	WorkloadCeiling int
	RetryAttempts   int
	RetryBackoff    time.Duration
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:             os.Getenv("DB_URI"),
		DatabaseName:    os.Getenv("DB_NAME"),
		BaseURL:         os.Getenv("BASE_URL"),
		Port:            os.Getenv("PORT"),
		WorkloadCeiling: envInt("WORKLOAD_CEILING", DefaultWorkloadCeiling),
		RetryAttempts:   envInt("RETRY_MAX_ATTEMPTS", DefaultRetryAttempts),
		RetryBackoff:    time.Duration(envInt("RETRY_BACKOFF_MS", int(DefaultRetryBackoff/time.Millisecond))) * time.Millisecond,
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		zap.S().Warnf("invalid %s value %q, using default of %v", key, v, fallback)
		return fallback
	}
	return n
}

// ErrorStatus is a useful function that will log, write http headers and body
// for a given message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	errStr := ""
	if err != nil {
		errStr = err.Error()
	}
	b, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: errStr}})
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}
