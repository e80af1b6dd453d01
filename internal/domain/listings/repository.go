package listings

import (
	"context"

	"family-connect-go/internal/domain/user"
)

type Repository interface {
	CreateBusiness(ctx context.Context, business *Business) error
	GetBusiness(ctx context.Context, id string) (*Business, error)
	ListActiveBusinesses(ctx context.Context, category string) ([]Business, error)
	ListBusinessesByOwner(ctx context.Context, userID string) ([]Business, error)
	UpdateBusiness(ctx context.Context, business *Business) error
	DeleteBusiness(ctx context.Context, id string) (bool, error)

	CreateWelcomeCard(ctx context.Context, card *WelcomeCard) error
	GetWelcomeCard(ctx context.Context, id string) (*WelcomeCard, error)
	// ListWelcomeCards orders by sort order then creation time.
	ListWelcomeCards(ctx context.Context, activeOnly bool) ([]WelcomeCard, error)
	UpdateWelcomeCard(ctx context.Context, card *WelcomeCard) error
	DeleteWelcomeCard(ctx context.Context, id string) (bool, error)
}

type UserDirectory interface {
	PublicUsers(ctx context.Context, ids []string) (map[string]user.PublicUser, error)
}
