package user

import (
	"fmt"

	"family-connect-go/internal/domain/apperr"
)

var (
	ErrUserNotFound         = fmt.Errorf("user not found: %w", apperr.ErrNotFound)
	ErrFamilyMemberNotFound = fmt.Errorf("family member not found: %w", apperr.ErrNotFound)
	ErrEmailTaken           = fmt.Errorf("email already registered: %w", apperr.ErrConflict)
)
