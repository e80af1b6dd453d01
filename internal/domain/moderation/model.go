package moderation

import (
	"time"

	"family-connect-go/internal/domain/user"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

var reportStatuses = map[string]struct{}{
	ReportStatusPending:   {},
	ReportStatusReviewed:  {},
	ReportStatusResolved:  {},
	ReportStatusDismissed: {},
}

func ValidReportStatus(status string) bool {
	_, ok := reportStatuses[status]
	return ok
}

// UserBlock is stored directed; readers treat it as hiding both users from each other.
type UserBlock struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	UserID        string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_blocks_pair"`
	BlockedUserID string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_blocks_pair"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

type UserReport struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	ReporterID     string    `gorm:"type:uuid;not null;index"`
	ReportedUserID string    `gorm:"type:uuid;not null;index"`
	Reason         string    `gorm:"not null"`
	Details        *string   `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(16);not null;default:pending"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

type BlockedUser struct {
	Block UserBlock
	User  *user.PublicUser
}

type BlockView struct {
	Block   UserBlock
	Blocker *user.PublicUser
	Blocked *user.PublicUser
}

type ReportView struct {
	Report   UserReport
	Reporter *user.PublicUser
	Reported *user.PublicUser
}

type ReportInput struct {
	ReporterID     string
	ReportedUserID string
	Reason         string
	Details        *string
}
