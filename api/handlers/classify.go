package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Pinoccchio/LawbotWeb-sub002/allocation"
	"github.com/Pinoccchio/LawbotWeb-sub002/config"
	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

// Classify exposes the crime-type classifier
type Classify struct {
	Classifier *allocation.Classifier
}

// CrimeTypesHandler returns the static crime-type reference table
func (c Classify) CrimeTypesHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(models.CrimeTypeTable)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ClassifyHandler resolves a crime-type string to a category and
// recommended unit. Unclassifiable input is a 400: the frontend must then
// ask the operator for a manual category.
func (c Classify) ClassifyHandler(w http.ResponseWriter, r *http.Request) {
	crimeType := r.URL.Query().Get("crimeType")
	zap.S().Debugf("crimeType: '%v'", crimeType)

	classification, err := c.Classifier.Classify(crimeType)
	if err != nil {
		config.ErrorStatus("failed to classify crime type", http.StatusBadRequest, w, err)
		return
	}

	b, err := json.Marshal(classification)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
