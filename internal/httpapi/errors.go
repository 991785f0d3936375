package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"medpredict/internal/manager"
	"medpredict/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps service errors to HTTP status codes and records backpressure.
func statusFor(err error) int {
	switch {
	case manager.IsModelNotFound(err), manager.IsDiseaseNotFound(err):
		return http.StatusNotFound
	case manager.IsInvalidInput(err):
		return http.StatusUnprocessableEntity
	case manager.IsTooBusy(err):
		IncrementBackpressure("queue")
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		IncrementBackpressure("timeout")
		return http.StatusGatewayTimeout
	}
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

// fieldErrors extracts per-field messages from an invalid input error.
func fieldErrors(err error) map[string]string {
	var ie *manager.InvalidInputError
	if errors.As(err, &ie) {
		return ie.Fields
	}
	return nil
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSONErrorFields(w, status, msg, nil)
}

func writeJSONErrorFields(w http.ResponseWriter, status int, msg string, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status, Fields: fields})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}
