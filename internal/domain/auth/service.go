package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"family-connect-go/internal/domain/apperr"
	"family-connect-go/internal/domain/ids"
	"family-connect-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo        Repository
	adminEmails map[string]struct{}
	hashCost    int
	now         func() time.Time
}

// NewService builds the identity service. Accounts registered with one of adminEmails get the admin role.
func NewService(repo Repository, adminEmails []string) *Service {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			admins[email] = struct{}{}
		}
	}
	return &Service{
		repo:        repo,
		adminEmails: admins,
		hashCost:    bcrypt.DefaultCost,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *Service) SignUp(ctx context.Context, email, password, familyName string) (*user.PublicUser, error) {
	email = strings.TrimSpace(email)
	familyName = strings.TrimSpace(familyName)
	if email == "" {
		return nil, apperr.Validation("email is required")
	}
	if password == "" {
		return nil, apperr.Validation("password is required")
	}
	if familyName == "" {
		return nil, apperr.Validation("familyName is required")
	}

	_, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, user.ErrEmailTaken
	case !errors.Is(err, user.ErrUserNotFound):
		return nil, err
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	role := user.RoleMember
	if _, ok := s.adminEmails[strings.ToLower(email)]; ok {
		role = user.RoleAdmin
	}

	account := user.User{
		ID:           ids.New(),
		Email:        email,
		PasswordHash: hash,
		FamilyName:   familyName,
		RadiusKm:     10,
		Interests:    []string{},
		Role:         role,
	}
	if err := s.repo.CreateUser(ctx, &account); err != nil {
		return nil, err
	}

	public := account.Public()
	return &public, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*user.PublicUser, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	account, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	public := account.Public()
	return &public, nil
}

// IssueResetToken stores a new six digit token. An unknown email yields (nil, nil) so callers
// cannot learn whether an address is registered.
func (s *Service) IssueResetToken(ctx context.Context, email string) (*ResetTicket, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.Validation("email is required")
	}

	account, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}

	value, err := generateResetToken()
	if err != nil {
		return nil, fmt.Errorf("generate reset token: %w", err)
	}

	now := s.now()
	token := PasswordResetToken{
		ID:        ids.New(),
		UserID:    account.ID,
		Token:     value,
		ExpiresAt: now.Add(resetTokenTTL),
		CreatedAt: now,
	}
	if err := s.repo.CreateResetToken(ctx, &token); err != nil {
		return nil, err
	}

	return &ResetTicket{
		Email:      account.Email,
		FamilyName: account.FamilyName,
		Token:      value,
		ExpiresAt:  token.ExpiresAt,
	}, nil
}

func (s *Service) VerifyResetToken(ctx context.Context, email, value string) error {
	_, err := s.activeToken(ctx, s.repo, email, value)
	return err
}

func (s *Service) ResetPassword(ctx context.Context, email, value, newPassword string) error {
	if newPassword == "" {
		return apperr.Validation("newPassword is required")
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.repo.Transaction(ctx, func(repo Repository) error {
		token, err := s.activeToken(ctx, repo, email, value)
		if err != nil {
			return err
		}

		marked, err := repo.MarkResetTokenUsed(ctx, token.ID)
		if err != nil {
			return err
		}
		if !marked {
			return ErrInvalidResetToken
		}

		return repo.UpdatePasswordHash(ctx, token.UserID, hash)
	})
}

func (s *Service) activeToken(ctx context.Context, repo Repository, email, value string) (*PasswordResetToken, error) {
	email = strings.TrimSpace(email)
	value = strings.TrimSpace(value)
	if email == "" || value == "" {
		return nil, apperr.Validation("email and token are required")
	}

	account, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidResetToken
		}
		return nil, err
	}

	token, err := repo.FindActiveResetToken(ctx, account.ID, value, s.now())
	if err != nil {
		return nil, err
	}
	if token.Used || token.Expired(s.now()) {
		return nil, ErrInvalidResetToken
	}
	return token, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperr.Validation("password is too long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func generateResetToken() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < resetTokenDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", resetTokenDigits, n.Int64()), nil
}
