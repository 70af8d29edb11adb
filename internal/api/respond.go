package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kestrelfin/tradestore/internal/filter"
	"github.com/kestrelfin/tradestore/internal/template"
	"github.com/kestrelfin/tradestore/internal/trade"
	"github.com/kestrelfin/tradestore/internal/validation"
)

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}

// serviceError maps domain errors onto the deployment's status contract:
// AlreadyExists 409, NotFound 404, InvalidContext/InvalidFilter/missing
// id 422, everything else 500.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, trade.ErrAlreadyExists):
		httpError(w, http.StatusConflict, "already_exists", "%v", err)
	case errors.Is(err, trade.ErrNotFound), errors.Is(err, template.ErrUnknownType):
		httpError(w, http.StatusNotFound, "not_found", "%v", err)
	case errors.Is(err, trade.ErrInvalidContext),
		errors.Is(err, trade.ErrMissingID),
		errors.Is(err, filter.ErrInvalid),
		errors.Is(err, validation.ErrUnknownTradeType):
		httpError(w, http.StatusUnprocessableEntity, "validation_error", "%v", err)
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
	}
}

func decode(w http.ResponseWriter, r *http.Request, into any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return false
	}
	return true
}
