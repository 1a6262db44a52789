package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/simonvc/fecledger/internal/ledger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func mapError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrEntityNotFound),
		errors.Is(err, ledger.ErrClientNotFound),
		errors.Is(err, ledger.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrDuplicateNumber):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInvalidPeriod),
		errors.Is(err, ledger.ErrInvalidEntity),
		errors.Is(err, ledger.ErrInvalidClient),
		errors.Is(err, ledger.ErrInvalidDocument),
		errors.Is(err, ledger.ErrInvalidPayment),
		errors.Is(err, ledger.ErrClientEntityMatch):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrQuoteNotPayable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its mapped status. Server-side failures are logged.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := mapError(err)
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	writeError(w, status, err.Error())
}
