package connections

import (
	"fmt"

	"family-connect-go/internal/domain/apperr"
)

var (
	ErrConnectionNotFound  = fmt.Errorf("connection not found: %w", apperr.ErrNotFound)
	ErrConnectionExists    = fmt.Errorf("connection already exists: %w", apperr.ErrConflict)
	ErrBlocked             = fmt.Errorf("users have blocked each other: %w", apperr.ErrConflict)
	ErrNotTarget           = fmt.Errorf("only the requested user may respond: %w", apperr.ErrForbidden)
	ErrNotParticipant      = fmt.Errorf("user is not part of this connection: %w", apperr.ErrForbidden)
	ErrInvalidTransition   = fmt.Errorf("connection is no longer pending: %w", apperr.ErrInvalidTransition)
	ErrUnsupportedResponse = fmt.Errorf("status must be connected or rejected: %w", apperr.ErrInvalidTransition)
)
