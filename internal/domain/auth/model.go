package auth

import "time"

const (
	resetTokenDigits = 6
	resetTokenTTL    = 15 * time.Minute
)

type PasswordResetToken struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(6);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// ResetTicket is what the caller needs to deliver a freshly issued reset token.
type ResetTicket struct {
	Email      string
	FamilyName string
	Token      string
	ExpiresAt  time.Time
}
