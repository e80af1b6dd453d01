package connections

import (
	"context"
	"errors"
	"time"

	connectionsdomain "family-connect-go/internal/domain/connections"
	userdomain "family-connect-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, connection *connectionsdomain.Connection) error {
	if err := r.db.WithContext(ctx).Create(connection).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return connectionsdomain.ErrConnectionExists
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return userdomain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*connectionsdomain.Connection, error) {
	var connection connectionsdomain.Connection
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&connection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, connectionsdomain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &connection, nil
}

func (r *PostgresRepository) GetByPair(ctx context.Context, low, high string) (*connectionsdomain.Connection, error) {
	var connection connectionsdomain.Connection
	if err := r.db.WithContext(ctx).
		Where("pair_low = ? AND pair_high = ?", low, high).
		First(&connection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, connectionsdomain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &connection, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&connectionsdomain.Connection{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]connectionsdomain.Connection, error) {
	var connections []connectionsdomain.Connection
	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR target_user_id = ?", userID, userID).
		Order("created_at desc").
		Find(&connections).Error; err != nil {
		return nil, err
	}
	return connections, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&connectionsdomain.Connection{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
