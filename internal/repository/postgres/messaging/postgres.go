package messaging

import (
	"context"
	"errors"
	"time"

	messagingdomain "family-connect-go/internal/domain/messaging"
	userdomain "family-connect-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(messagingdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetThread(ctx context.Context, id string) (*messagingdomain.MessageThread, error) {
	var thread messagingdomain.MessageThread
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&thread).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, messagingdomain.ErrThreadNotFound
		}
		return nil, err
	}
	return &thread, nil
}

func (r *PostgresRepository) GetThreadByPair(ctx context.Context, user1ID, user2ID string) (*messagingdomain.MessageThread, error) {
	var thread messagingdomain.MessageThread
	if err := r.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).
		First(&thread).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, messagingdomain.ErrThreadNotFound
		}
		return nil, err
	}
	return &thread, nil
}

func (r *PostgresRepository) CreateThread(ctx context.Context, thread *messagingdomain.MessageThread) error {
	if err := r.db.WithContext(ctx).Create(thread).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return messagingdomain.ErrThreadExists
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return userdomain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) ListThreadsForUser(ctx context.Context, userID string) ([]messagingdomain.MessageThread, error) {
	var threads []messagingdomain.MessageThread
	if err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("last_message_at desc nulls last, created_at desc").
		Find(&threads).Error; err != nil {
		return nil, err
	}
	return threads, nil
}

func (r *PostgresRepository) UpdateLastMessage(ctx context.Context, threadID, text string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&messagingdomain.MessageThread{}).
		Where("id = ?", threadID).
		Updates(map[string]interface{}{
			"last_message":    text,
			"last_message_at": at,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return messagingdomain.ErrThreadNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateMessage(ctx context.Context, message *messagingdomain.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return messagingdomain.ErrThreadNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) ListMessages(ctx context.Context, threadID string) ([]messagingdomain.Message, error) {
	var messages []messagingdomain.Message
	if err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at asc").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *PostgresRepository) MarkRead(ctx context.Context, threadID, readerID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&messagingdomain.Message{}).
		Where("thread_id = ? AND sender_id <> ? AND read = ?", threadID, readerID, false).
		Update("read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *PostgresRepository) CountUnread(ctx context.Context, threadID, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&messagingdomain.Message{}).
		Where("thread_id = ? AND sender_id <> ? AND read = ?", threadID, userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountUnreadByThread(ctx context.Context, userID string) (map[string]int64, error) {
	type unreadRow struct {
		ThreadID string `gorm:"column:thread_id"`
		Unread   int64  `gorm:"column:unread"`
	}

	var rows []unreadRow
	if err := r.unreadForUser(ctx, userID).
		Select("messages.thread_id, COUNT(*) AS unread").
		Group("messages.thread_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.ThreadID] = row.Unread
	}
	return result, nil
}

func (r *PostgresRepository) CountUnreadTotal(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.unreadForUser(ctx, userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) unreadForUser(ctx context.Context, userID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("messages").
		Joins("JOIN message_threads ON message_threads.id = messages.thread_id").
		Where("(message_threads.user1_id = ? OR message_threads.user2_id = ?)", userID, userID).
		Where("messages.sender_id <> ? AND messages.read = ?", userID, false)
}
