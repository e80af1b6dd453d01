package messaging

import (
	"context"
	"time"

	"family-connect-go/internal/domain/user"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetThread(ctx context.Context, id string) (*MessageThread, error)
	// GetThreadByPair expects user1ID < user2ID.
	GetThreadByPair(ctx context.Context, user1ID, user2ID string) (*MessageThread, error)
	// CreateThread returns ErrThreadExists when the pair index is already taken.
	CreateThread(ctx context.Context, thread *MessageThread) error
	ListThreadsForUser(ctx context.Context, userID string) ([]MessageThread, error)
	UpdateLastMessage(ctx context.Context, threadID, text string, at time.Time) error

	CreateMessage(ctx context.Context, message *Message) error
	// ListMessages returns the thread's messages oldest first.
	ListMessages(ctx context.Context, threadID string) ([]Message, error)
	// MarkRead flips unread messages not sent by readerID and returns how many changed.
	MarkRead(ctx context.Context, threadID, readerID string) (int64, error)
	CountUnread(ctx context.Context, threadID, userID string) (int64, error)
	CountUnreadByThread(ctx context.Context, userID string) (map[string]int64, error)
	CountUnreadTotal(ctx context.Context, userID string) (int64, error)
}

type BlockChecker interface {
	IsBlocked(ctx context.Context, a, b string) (bool, error)
	BlockedUserIDs(ctx context.Context, userID string) (map[string]struct{}, error)
}

type UserDirectory interface {
	PublicUsers(ctx context.Context, ids []string) (map[string]user.PublicUser, error)
}
