package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorBody carries human-readable error messages, matching the wire format
// clients already consume.
type errorBody struct {
	NonFieldErrors []string `json:"non_field_errors"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Errors writes an error response carrying the given messages under the
// non_field_errors key.
func Errors(w http.ResponseWriter, status int, messages ...string) {
	JSON(w, status, errorBody{NonFieldErrors: messages})
}
