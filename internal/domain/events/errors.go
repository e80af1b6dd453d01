package events

import (
	"fmt"

	"family-connect-go/internal/domain/apperr"
)

var (
	ErrEventNotFound = fmt.Errorf("event not found: %w", apperr.ErrNotFound)
	ErrNotOwner      = fmt.Errorf("only the organiser can change this event: %w", apperr.ErrForbidden)
)
