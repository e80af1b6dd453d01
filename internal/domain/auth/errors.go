package auth

import (
	"fmt"

	"family-connect-go/internal/domain/apperr"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperr.ErrUnauthorized)
	ErrInvalidResetToken  = fmt.Errorf("invalid or expired reset token: %w", apperr.ErrInvalidOrExpired)
)
