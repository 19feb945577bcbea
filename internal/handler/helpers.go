package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/no-thing-project/hub-frontend/internal/hub"
	internal_errors "github.com/no-thing-project/hub-frontend/shared/errors"
	"github.com/no-thing-project/hub-frontend/shared/logger"
)

// decodeValidate parses a JSON request body and runs struct validation on it.
func (h *Handler) decodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		return &internal_errors.ErrorWithStatusCode{Message: "body is invalid json", StatusCode: http.StatusBadRequest}
	}
	if err := h.validate.Struct(body); err != nil {
		return &internal_errors.ErrorWithStatusCode{Message: "required fields missing", StatusCode: http.StatusBadRequest}
	}
	return nil
}

// writeContent writes a payload wrapped in the same {"content": ...}
// envelope the backend uses, so the UI decodes one shape everywhere.
func writeContent(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{"content": v}); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// writeError maps a classified failure onto an HTTP response. Cancelled
// requests get nothing: the caller is gone and nothing should be surfaced.
func writeError(w http.ResponseWriter, err error) {
	var status int
	body := map[string]any{"message": err.Error()}

	switch internal_errors.Classify(err) {
	case internal_errors.KindCancelled:
		return
	case internal_errors.KindValidation:
		status = http.StatusBadRequest
	case internal_errors.KindAuthRequired, internal_errors.KindAuthFailure:
		status = http.StatusUnauthorized
		body["redirect"] = "/login"
	case internal_errors.KindNotFound:
		status = http.StatusNotFound
	case internal_errors.KindRateLimited:
		status = http.StatusTooManyRequests
	default:
		status = http.StatusInternalServerError
		if sc, ok := err.(*internal_errors.ErrorWithStatusCode); ok && sc.StatusCode != 0 {
			status = sc.StatusCode
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("failed to encode error response", "error", err)
	}
}

// filtersFrom copies single-value query parameters into a filter set.
func filtersFrom(r *http.Request) hub.Filters {
	query := r.URL.Query()
	if len(query) == 0 {
		return nil
	}
	filters := make(hub.Filters, len(query))
	for key, values := range query {
		if len(values) > 0 && values[0] != "" {
			filters[key] = values[0]
		}
	}
	return filters
}
