package user

import (
	"context"
	"errors"
	"time"

	userdomain "family-connect-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	var user userdomain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	var user userdomain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []string) ([]userdomain.User, error) {
	if len(ids) == 0 {
		return []userdomain.User{}, nil
	}
	var users []userdomain.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *userdomain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return userdomain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, user *userdomain.User) error {
	user.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"family_name": user.FamilyName,
			"bio":         user.Bio,
			"avatar_url":  user.AvatarURL,
			"suburb":      user.Suburb,
			"city":        user.City,
			"latitude":    user.Latitude,
			"longitude":   user.Longitude,
			"radius_km":   user.RadiusKm,
			"interests":   user.Interests,
			"updated_at":  user.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userdomain.ErrUserNotFound
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

func (r *PostgresRepository) ListFamilyMembers(ctx context.Context, userIDs []string) ([]userdomain.FamilyMember, error) {
	if len(userIDs) == 0 {
		return []userdomain.FamilyMember{}, nil
	}
	var members []userdomain.FamilyMember
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) GetFamilyMember(ctx context.Context, id string) (*userdomain.FamilyMember, error) {
	var member userdomain.FamilyMember
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrFamilyMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) CreateFamilyMember(ctx context.Context, member *userdomain.FamilyMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return userdomain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) UpdateFamilyMember(ctx context.Context, member *userdomain.FamilyMember) error {
	result := r.db.WithContext(ctx).
		Model(&userdomain.FamilyMember{}).
		Where("id = ?", member.ID).
		Updates(map[string]interface{}{
			"name": member.Name,
			"age":  member.Age,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userdomain.ErrFamilyMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteFamilyMember(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&userdomain.FamilyMember{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
