package connections

import (
	"context"

	"family-connect-go/internal/domain/user"
)

type Repository interface {
	// Create returns ErrConnectionExists when the pair index is already taken.
	Create(ctx context.Context, connection *Connection) error
	GetByID(ctx context.Context, id string) (*Connection, error)
	GetByPair(ctx context.Context, low, high string) (*Connection, error)
	// UpdateStatus changes the status only while it still equals from.
	UpdateStatus(ctx context.Context, id, from, to string) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]Connection, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type BlockChecker interface {
	IsBlocked(ctx context.Context, a, b string) (bool, error)
	BlockedUserIDs(ctx context.Context, userID string) (map[string]struct{}, error)
}

type UserDirectory interface {
	PublicUsers(ctx context.Context, ids []string) (map[string]user.PublicUser, error)
}
