package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"family-connect-go/internal/domain/apperr"
	userdomain "family-connect-go/internal/domain/user"
)

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (h *Handlers) decodeOrReject(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeJSON(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

// fail maps a service error to a status. Unknown errors are logged and never echoed.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, op string, err error, args ...any) {
	log := h.logFor(r.Context())

	var status int
	switch {
	case errors.Is(err, apperr.ErrValidation):
		writeError(w, http.StatusBadRequest, apperr.Message(err))
		log.BusinessError(op, err, args...)
		return
	case errors.Is(err, userdomain.ErrEmailTaken):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrInvalidOrExpired):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrInvalidTransition):
		status = http.StatusConflict
	default:
		log.InternalError(op, err, args...)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.BusinessError(op, err, args...)
	writeError(w, status, publicMessage(err))
}

// publicMessage drops the trailing kind, so "user not found: not found" becomes "user not found".
func publicMessage(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx > 0 {
		return msg[:idx]
	}
	return msg
}
