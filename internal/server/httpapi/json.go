package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avelinsk/teamspace/internal/common"
)

// APIError is the JSON error envelope returned on every failure.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: APIError{Code: code, Message: message}})
}

// writeServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognized becomes a 500 with a generic message so internals never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, common.ErrLastAdmin):
		writeError(w, http.StatusBadRequest, "LAST_ADMIN", "an organization must keep at least one admin")
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
	case errors.Is(err, common.ErrorForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, common.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "DUPLICATE_EMAIL", "email is already registered")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "ALREADY_EXISTS", "resource already exists")
	case errors.Is(err, common.ErrInvalidParent):
		writeError(w, http.StatusBadRequest, "INVALID_PARENT", "parent document does not exist")
	case errors.Is(err, common.ErrDocumentHasChildren):
		writeError(w, http.StatusBadRequest, "HAS_CHILDREN", "document still has child documents")
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

// decodeJSON reads the request body into v, limiting it to 1 MiB.
func decodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
