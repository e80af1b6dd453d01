package moderation

import (
	"fmt"

	"family-connect-go/internal/domain/apperr"
)

var (
	ErrBlockExists    = fmt.Errorf("block already exists: %w", apperr.ErrConflict)
	ErrBlockNotFound  = fmt.Errorf("block not found: %w", apperr.ErrNotFound)
	ErrReportNotFound = fmt.Errorf("report not found: %w", apperr.ErrNotFound)
)
