package moderation

import (
	"context"
	"errors"
	"time"

	moderationdomain "family-connect-go/internal/domain/moderation"
	userdomain "family-connect-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetBlock(ctx context.Context, userID, blockedUserID string) (*moderationdomain.UserBlock, error) {
	var block moderationdomain.UserBlock
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND blocked_user_id = ?", userID, blockedUserID).
		First(&block).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, moderationdomain.ErrBlockNotFound
		}
		return nil, err
	}
	return &block, nil
}

func (r *PostgresRepository) CreateBlock(ctx context.Context, block *moderationdomain.UserBlock) error {
	if err := r.db.WithContext(ctx).Create(block).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return moderationdomain.ErrBlockExists
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return userdomain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) DeleteBlock(ctx context.Context, userID, blockedUserID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND blocked_user_id = ?", userID, blockedUserID).
		Delete(&moderationdomain.UserBlock{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) ListBlocksBy(ctx context.Context, userID string) ([]moderationdomain.UserBlock, error) {
	var blocks []moderationdomain.UserBlock
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *PostgresRepository) ListBlocks(ctx context.Context) ([]moderationdomain.UserBlock, error) {
	var blocks []moderationdomain.UserBlock
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *PostgresRepository) BlockExistsBetween(ctx context.Context, a, b string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&moderationdomain.UserBlock{}).
		Where("(user_id = ? AND blocked_user_id = ?) OR (user_id = ? AND blocked_user_id = ?)", a, b, b, a).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) BlockCounterparts(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Raw(`
		SELECT blocked_user_id FROM user_blocks WHERE user_id = ?
		UNION
		SELECT user_id FROM user_blocks WHERE blocked_user_id = ?`,
		userID, userID,
	).Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PostgresRepository) CreateReport(ctx context.Context, report *moderationdomain.UserReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return userdomain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) GetReport(ctx context.Context, id string) (*moderationdomain.UserReport, error) {
	var report moderationdomain.UserReport
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, moderationdomain.ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *PostgresRepository) ListReports(ctx context.Context, status string) ([]moderationdomain.UserReport, error) {
	query := r.db.WithContext(ctx).Model(&moderationdomain.UserReport{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []moderationdomain.UserReport
	if err := query.Order("created_at desc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *PostgresRepository) UpdateReportStatus(ctx context.Context, id, status string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&moderationdomain.UserReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
