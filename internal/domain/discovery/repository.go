package discovery

import (
	"context"

	"family-connect-go/internal/domain/user"
)

type Repository interface {
	// ListCandidates returns every non-admin user whose id is not in excludeIDs.
	ListCandidates(ctx context.Context, excludeIDs []string) ([]user.User, error)
}

type UserLookup interface {
	GetUser(ctx context.Context, userID string) (*user.User, error)
	FamilyMembersByUser(ctx context.Context, userIDs []string) (map[string][]user.FamilyMember, error)
}

type BlockLister interface {
	BlockedUserIDs(ctx context.Context, userID string) (map[string]struct{}, error)
}
