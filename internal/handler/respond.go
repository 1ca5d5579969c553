package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/inclusionhub/backend/pkg/schema"
)

const internalErrorMessage = "Internal Server Error"

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "status", status, "error", err)
	}
}

// writeError writes an ErrorResponse body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, schema.ErrorResponse{Message: message})
}

// internalError logs err and answers 500 without exposing it.
func internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg,
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(r.Context()),
	)
	writeError(w, http.StatusInternalServerError, internalErrorMessage)
}
