package listings

import (
	"context"
	"errors"
	"time"

	listingsdomain "family-connect-go/internal/domain/listings"
	userdomain "family-connect-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateBusiness(ctx context.Context, business *listingsdomain.Business) error {
	if err := r.db.WithContext(ctx).Create(business).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return userdomain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) GetBusiness(ctx context.Context, id string) (*listingsdomain.Business, error) {
	var business listingsdomain.Business
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listingsdomain.ErrBusinessNotFound
		}
		return nil, err
	}
	return &business, nil
}

func (r *PostgresRepository) ListActiveBusinesses(ctx context.Context, category string) ([]listingsdomain.Business, error) {
	query := r.db.WithContext(ctx).
		Model(&listingsdomain.Business{}).
		Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var businesses []listingsdomain.Business
	if err := query.Order("name asc").Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *PostgresRepository) ListBusinessesByOwner(ctx context.Context, userID string) ([]listingsdomain.Business, error) {
	var businesses []listingsdomain.Business
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *PostgresRepository) UpdateBusiness(ctx context.Context, business *listingsdomain.Business) error {
	business.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(business).
		Select("name", "description", "category", "location", "website", "phone", "image_url", "is_active", "updated_at").
		Updates(business)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return listingsdomain.ErrBusinessNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteBusiness(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&listingsdomain.Business{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) CreateWelcomeCard(ctx context.Context, card *listingsdomain.WelcomeCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *PostgresRepository) GetWelcomeCard(ctx context.Context, id string) (*listingsdomain.WelcomeCard, error) {
	var card listingsdomain.WelcomeCard
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listingsdomain.ErrWelcomeCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *PostgresRepository) ListWelcomeCards(ctx context.Context, activeOnly bool) ([]listingsdomain.WelcomeCard, error) {
	query := r.db.WithContext(ctx).Model(&listingsdomain.WelcomeCard{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var cards []listingsdomain.WelcomeCard
	if err := query.Order("sort_order asc, created_at asc").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *PostgresRepository) UpdateWelcomeCard(ctx context.Context, card *listingsdomain.WelcomeCard) error {
	card.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(card).
		Select("title", "body", "image_url", "sort_order", "is_active", "updated_at").
		Updates(card)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return listingsdomain.ErrWelcomeCardNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteWelcomeCard(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&listingsdomain.WelcomeCard{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
