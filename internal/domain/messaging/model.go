package messaging

import (
	"time"

	"family-connect-go/internal/domain/user"
)

const maxMessageLength = 4000

// MessageThread holds one unordered pair. User1ID is always the smaller id.
type MessageThread struct {
	ID            string     `gorm:"type:uuid;primaryKey"`
	User1ID       string     `gorm:"type:uuid;not null;uniqueIndex:idx_message_threads_pair"`
	User2ID       string     `gorm:"type:uuid;not null;uniqueIndex:idx_message_threads_pair"`
	LastMessage   *string    `gorm:"type:text"`
	LastMessageAt *time.Time `gorm:"index"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
}

func (t *MessageThread) HasParticipant(userID string) bool {
	return t.User1ID == userID || t.User2ID == userID
}

func (t *MessageThread) OtherParticipant(userID string) string {
	if t.User1ID == userID {
		return t.User2ID
	}
	return t.User1ID
}

// Message.Read only ever goes from false to true.
type Message struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	ThreadID  string    `gorm:"type:uuid;not null;index"`
	SenderID  string    `gorm:"type:uuid;not null"`
	Text      string    `gorm:"type:text;not null"`
	Read      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type ThreadView struct {
	MessageThread
	OtherUserID string
	OtherUser   *user.PublicUser
	UnreadCount int64
}
