package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/api/response"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/validation"
)

// maxBodyBytes bounds request bodies; a ledger record is a few hundred bytes.
const maxBodyBytes = 1 << 20

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON", "error", err)
		}
	}
}

// parseJSON decodes the request body into T. Unknown fields and trailing data are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T

	if r.Body == nil {
		return req, errors.New("request body is empty")
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, errors.New("request body is empty")
		}
		return req, fmt.Errorf("invalid JSON: %w", err)
	}
	if decoder.More() {
		return req, errors.New("request body must contain a single JSON object")
	}

	return req, nil
}

// respondServiceError maps a service error to an HTTP status:
// 404 for a missing account, 400 for rejected input and 500 for anything else.
func respondServiceError(w http.ResponseWriter, err error, message string) {
	var validationErr *validation.Error

	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
	case errors.As(err, &validationErr),
		errors.Is(err, apperrors.ErrInvalidDate),
		apperrors.IsLedgerValidation(err):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
	default:
		slog.Error(message, "error", err)
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}
