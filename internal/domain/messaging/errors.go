package messaging

import (
	"fmt"

	"family-connect-go/internal/domain/apperr"
)

var (
	ErrThreadNotFound = fmt.Errorf("thread not found: %w", apperr.ErrNotFound)
	ErrThreadExists   = fmt.Errorf("thread already exists: %w", apperr.ErrConflict)
	ErrNotParticipant = fmt.Errorf("user is not part of this thread: %w", apperr.ErrForbidden)
	ErrBlocked        = fmt.Errorf("messaging between these users is blocked: %w", apperr.ErrForbidden)
)
