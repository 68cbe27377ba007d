package handler

import (
	"encoding/json"
	"net/http"

	"schedly-be/pkg/logger"
)

// errorBody is the client-facing error payload. The message is the
// domain-facing, human-readable text the frontend surfaces directly.
type errorBody struct {
	Message string `json:"message"`
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, payload interface{}, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// respondError writes a JSON error response with a message field
func respondError(w http.ResponseWriter, status int, message string, log *logger.Logger) {
	respondJSON(w, status, errorBody{Message: message}, log)
}
