package listings

import (
	"fmt"

	"family-connect-go/internal/domain/apperr"
)

var (
	ErrBusinessNotFound    = fmt.Errorf("business not found: %w", apperr.ErrNotFound)
	ErrWelcomeCardNotFound = fmt.Errorf("welcome card not found: %w", apperr.ErrNotFound)
	ErrNotOwner            = fmt.Errorf("only the owner can change this business: %w", apperr.ErrForbidden)
)
