package moderation

import (
	"context"

	"family-connect-go/internal/domain/user"
)

type Repository interface {
	GetBlock(ctx context.Context, userID, blockedUserID string) (*UserBlock, error)
	// CreateBlock returns ErrBlockExists when the directed pair is already stored.
	CreateBlock(ctx context.Context, block *UserBlock) error
	DeleteBlock(ctx context.Context, userID, blockedUserID string) (bool, error)
	ListBlocksBy(ctx context.Context, userID string) ([]UserBlock, error)
	ListBlocks(ctx context.Context) ([]UserBlock, error)
	// BlockExistsBetween checks both directions.
	BlockExistsBetween(ctx context.Context, a, b string) (bool, error)
	// BlockCounterparts returns every user blocked by, or blocking, userID.
	BlockCounterparts(ctx context.Context, userID string) ([]string, error)

	CreateReport(ctx context.Context, report *UserReport) error
	GetReport(ctx context.Context, id string) (*UserReport, error)
	// ListReports filters by status when it is non-empty. Newest first.
	ListReports(ctx context.Context, status string) ([]UserReport, error)
	UpdateReportStatus(ctx context.Context, id, status string) (bool, error)
}

// UserDirectory resolves public profiles; unknown ids are absent from the result.
type UserDirectory interface {
	PublicUsers(ctx context.Context, ids []string) (map[string]user.PublicUser, error)
}
