package events

import (
	"context"
	"errors"
	"time"

	eventsdomain "family-connect-go/internal/domain/events"
	userdomain "family-connect-go/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, event *eventsdomain.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return userdomain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*eventsdomain.Event, error) {
	var event eventsdomain.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventsdomain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *PostgresRepository) List(ctx context.Context, from time.Time) ([]eventsdomain.Event, error) {
	query := r.db.WithContext(ctx).Model(&eventsdomain.Event{})
	if !from.IsZero() {
		query = query.Where("date >= ?", from.Format("2006-01-02"))
	}

	var events []eventsdomain.Event
	if err := query.Order("date asc, created_at asc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PostgresRepository) Update(ctx context.Context, event *eventsdomain.Event) error {
	event.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(event).
		Select("title", "description", "date", "time", "location", "category", "image_url", "updated_at").
		Updates(event)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return eventsdomain.ErrEventNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&eventsdomain.Event{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) AddAttendee(ctx context.Context, eventID, userID string) error {
	attendee := eventsdomain.EventAttendee{EventID: eventID, UserID: userID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&attendee).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return eventsdomain.ErrEventNotFound
	}
	return err
}

func (r *PostgresRepository) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	return r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&eventsdomain.EventAttendee{}).Error
}

func (r *PostgresRepository) ListAttendees(ctx context.Context, eventID string) ([]eventsdomain.EventAttendee, error) {
	var attendees []eventsdomain.EventAttendee
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at asc").
		Find(&attendees).Error; err != nil {
		return nil, err
	}
	return attendees, nil
}

func (r *PostgresRepository) CountAttendees(ctx context.Context, eventIDs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return result, nil
	}

	type countRow struct {
		EventID string `gorm:"column:event_id"`
		Total   int64  `gorm:"column:total"`
	}
	var rows []countRow
	if err := r.db.WithContext(ctx).
		Model(&eventsdomain.EventAttendee{}).
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.EventID] = row.Total
	}
	return result, nil
}
