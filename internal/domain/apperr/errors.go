// Package apperr defines the error kinds shared by every domain service.
// Domain packages declare their own sentinels wrapping one of these kinds,
// and the transport layer maps kinds to HTTP statuses with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidOrExpired  = errors.New("invalid or expired")
	ErrInvalidTransition = errors.New("invalid transition")
)

// Validation reports a missing or malformed input field.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Message returns the client-safe text of a validation error.
func Message(err error) string {
	var msg string
	if err != nil {
		msg = err.Error()
	}
	prefix := ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
