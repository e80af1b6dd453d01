package events

import (
	"time"

	"family-connect-go/internal/domain/user"
)

const dateLayout = "2006-01-02"

type Event struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	UserID      string    `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description *string   `gorm:"type:text"`
	Date        time.Time `gorm:"type:date;not null;index"`
	Time        *string   `gorm:"type:varchar(32)"`
	Location    string    `gorm:"not null"`
	Category    string    `gorm:"not null"`
	ImageURL    *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// EventAttendee is keyed by (event, user); attending twice keeps one row.
type EventAttendee struct {
	EventID   string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type EventView struct {
	Event
	AttendeeCount int64
}

type Attendee struct {
	UserID     string
	User       *user.PublicUser
	AttendedAt time.Time
}

// EventInput carries create and partial-update fields. Date uses the YYYY-MM-DD layout.
type EventInput struct {
	UserID      string
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Location    *string
	Category    *string
	ImageURL    *string
}
