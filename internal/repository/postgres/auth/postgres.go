package auth

import (
	"context"
	"errors"
	"time"

	authdomain "family-connect-go/internal/domain/auth"
	userdomain "family-connect-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(authdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	var user userdomain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *userdomain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return userdomain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	result := r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": hash,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userdomain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateResetToken(ctx context.Context, token *authdomain.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *PostgresRepository) FindActiveResetToken(ctx context.Context, userID, value string, now time.Time) (*authdomain.PasswordResetToken, error) {
	var token authdomain.PasswordResetToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ? AND used = ? AND expires_at > ?", userID, value, false, now).
		Order("created_at desc").
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, authdomain.ErrInvalidResetToken
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *PostgresRepository) MarkResetTokenUsed(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&authdomain.PasswordResetToken{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
