package auth

import (
	"context"
	"time"

	"family-connect-go/internal/domain/user"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	// GetUserByEmail returns user.ErrUserNotFound for an unknown address.
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	// CreateUser returns user.ErrEmailTaken when the address is already registered.
	CreateUser(ctx context.Context, u *user.User) error
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
	CreateResetToken(ctx context.Context, token *PasswordResetToken) error
	// FindActiveResetToken returns the newest unused token for the user matching value
	// that has not expired at now, or ErrInvalidResetToken.
	FindActiveResetToken(ctx context.Context, userID, value string, now time.Time) (*PasswordResetToken, error)
	// MarkResetTokenUsed flips used only while it is still false and reports whether it did.
	MarkResetTokenUsed(ctx context.Context, id string) (bool, error)
}
