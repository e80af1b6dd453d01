package connections

import (
	"time"

	"family-connect-go/internal/domain/user"
)

const (
	StatusPending   = "pending"
	StatusConnected = "connected"
	StatusRejected  = "rejected"
)

const (
	DirectionSent     = "sent"
	DirectionReceived = "received"
)

// Connection is a request from UserID to TargetUserID. PairLow/PairHigh hold the same two ids in
// canonical order and carry the unique index that allows one connection per unordered pair.
type Connection struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	UserID       string    `gorm:"type:uuid;not null;index"`
	TargetUserID string    `gorm:"type:uuid;not null;index"`
	PairLow      string    `gorm:"type:uuid;not null;uniqueIndex:idx_connections_pair"`
	PairHigh     string    `gorm:"type:uuid;not null;uniqueIndex:idx_connections_pair"`
	Status       string    `gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (c *Connection) Involves(userID string) bool {
	return c.UserID == userID || c.TargetUserID == userID
}

func (c *Connection) Counterpart(userID string) string {
	if c.UserID == userID {
		return c.TargetUserID
	}
	return c.UserID
}

type View struct {
	Connection
	CounterpartID string
	Counterpart   *user.PublicUser
	Direction     string
}
