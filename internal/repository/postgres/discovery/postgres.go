package discovery

import (
	"context"

	userdomain "family-connect-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListCandidates(ctx context.Context, excludeIDs []string) ([]userdomain.User, error) {
	query := r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("role <> ?", userdomain.RoleAdmin)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	var users []userdomain.User
	if err := query.Order("created_at asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
