package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/careloop/hms-backend/internal/apperr"
)

// Envelope is the response wrapper every endpoint uses: payloads go out as
// {message, data}, errors as {message}.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Envelope{Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Message: message})
}

// handleError maps the domain error taxonomy onto HTTP statuses. Forbidden is
// deliberately 400 rather than 403, matching the original surface.
func handleError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case apperr.KindInvalid, apperr.KindConflict, apperr.KindForbidden:
		writeError(w, http.StatusBadRequest, err.Error())
	case apperr.KindUnauthenticated:
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		log.Error().Err(err).
			Str("request_id", GetRequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
