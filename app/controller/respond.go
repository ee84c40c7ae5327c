package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"fern-and-paper/logger"
	"fern-and-paper/models"
)

// writeJSON encodes a success response.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.L.Errorf("❌ Error encoding response: %v", err)
	}
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case models.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, models.ErrDuplicateReview):
		http.Error(w, "Product already reviewed", http.StatusBadRequest)
	case errors.Is(err, models.ErrConflict):
		http.Error(w, "Conflict", http.StatusConflict)
	default:
		logger.L.Errorf("❌ Internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
