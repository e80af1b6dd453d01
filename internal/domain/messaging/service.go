package messaging

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"family-connect-go/internal/domain/apperr"
	"family-connect-go/internal/domain/ids"
	"family-connect-go/internal/domain/user"
	"family-connect-go/internal/notify"
)

const previewLength = 120

type Service struct {
	repo     Repository
	users    UserDirectory
	blocks   BlockChecker
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, users UserDirectory, blocks BlockChecker, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{
		repo:     repo,
		users:    users,
		blocks:   blocks,
		notifier: notifier,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// GetOrCreateThread returns the single thread for the unordered pair, creating it on first use.
func (s *Service) GetOrCreateThread(ctx context.Context, userA, userB string) (*MessageThread, error) {
	userA, err := ids.Parse("userId1", userA)
	if err != nil {
		return nil, err
	}
	userB, err = ids.Parse("userId2", userB)
	if err != nil {
		return nil, err
	}
	if userA == userB {
		return nil, apperr.Validation("cannot start a thread with yourself")
	}

	profiles, err := s.users.PublicUsers(ctx, []string{userA, userB})
	if err != nil {
		return nil, err
	}
	if len(profiles) != 2 {
		return nil, user.ErrUserNotFound
	}

	blocked, err := s.blocks.IsBlocked(ctx, userA, userB)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrBlocked
	}

	low, high := ids.OrderedPair(userA, userB)
	thread, err := s.repo.GetThreadByPair(ctx, low, high)
	if err == nil {
		return thread, nil
	}
	if !errors.Is(err, ErrThreadNotFound) {
		return nil, err
	}

	created := MessageThread{
		ID:      ids.New(),
		User1ID: low,
		User2ID: high,
	}
	if err := s.repo.CreateThread(ctx, &created); err != nil {
		if errors.Is(err, ErrThreadExists) {
			return s.repo.GetThreadByPair(ctx, low, high)
		}
		return nil, err
	}
	return &created, nil
}

// Send appends a message and updates the thread summary in one transaction.
func (s *Service) Send(ctx context.Context, threadID, senderID, text string) (*Message, error) {
	threadID, err := ids.Parse("threadId", threadID)
	if err != nil {
		return nil, err
	}
	senderID, err = ids.Parse("senderId", senderID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validation("text is required")
	}
	if utf8.RuneCountInString(text) > maxMessageLength {
		return nil, apperr.Validation("text must be at most %d characters", maxMessageLength)
	}

	thread, err := s.repo.GetThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.HasParticipant(senderID) {
		return nil, ErrNotParticipant
	}
	recipientID := thread.OtherParticipant(senderID)

	blocked, err := s.blocks.IsBlocked(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrBlocked
	}

	message := Message{
		ID:        ids.New(),
		ThreadID:  threadID,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: s.now(),
	}
	err = s.repo.Transaction(ctx, func(repo Repository) error {
		if err := repo.CreateMessage(ctx, &message); err != nil {
			return err
		}
		return repo.UpdateLastMessage(ctx, threadID, text, message.CreatedAt)
	})
	if err != nil {
		return nil, err
	}

	senderName := "New message"
	if profiles, err := s.users.PublicUsers(ctx, []string{senderID}); err == nil {
		if profile, ok := profiles[senderID]; ok {
			senderName = profile.FamilyName
		}
	}
	s.notifier.Notify(ctx, notify.Notification{
		UserIDs: []string{recipientID},
		Title:   senderName,
		Body:    preview(strings.TrimSpace(text)),
		Data: map[string]string{
			"type":     notify.TypeNewMessage,
			"threadId": threadID,
			"senderId": senderID,
		},
	})

	return &message, nil
}

func (s *Service) ListMessages(ctx context.Context, threadID string) ([]Message, error) {
	threadID, err := ids.Parse("threadId", threadID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetThread(ctx, threadID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, threadID)
}

// MarkThreadRead marks the other participant's messages as read. The reader's own messages keep their state.
func (s *Service) MarkThreadRead(ctx context.Context, threadID, readerID string) (int64, error) {
	thread, readerID, err := s.participantThread(ctx, threadID, readerID)
	if err != nil {
		return 0, err
	}
	return s.repo.MarkRead(ctx, thread.ID, readerID)
}

func (s *Service) UnreadCount(ctx context.Context, threadID, userID string) (int64, error) {
	thread, userID, err := s.participantThread(ctx, threadID, userID)
	if err != nil {
		return 0, err
	}
	return s.repo.CountUnread(ctx, thread.ID, userID)
}

func (s *Service) TotalUnread(ctx context.Context, userID string) (int64, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return 0, err
	}
	return s.repo.CountUnreadTotal(ctx, userID)
}

// ListThreads returns the user's threads, most recently active first. Threads with a blocked
// counterpart are left out.
func (s *Service) ListThreads(ctx context.Context, userID string) ([]ThreadView, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return nil, err
	}

	threads, err := s.repo.ListThreadsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	hidden, err := s.blocks.BlockedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnreadByThread(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]ThreadView, 0, len(threads))
	others := make([]string, 0, len(threads))
	for _, thread := range threads {
		other := thread.OtherParticipant(userID)
		if _, ok := hidden[other]; ok {
			continue
		}
		views = append(views, ThreadView{
			MessageThread: thread,
			OtherUserID:   other,
			UnreadCount:   unread[thread.ID],
		})
		others = append(others, other)
	}

	profiles, err := s.users.PublicUsers(ctx, others)
	if err != nil {
		return nil, err
	}
	for i := range views {
		if profile, ok := profiles[views[i].OtherUserID]; ok {
			views[i].OtherUser = &profile
		}
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].LastMessageAt, views[j].LastMessageAt
		switch {
		case a != nil && b != nil:
			return a.After(*b)
		case a != nil:
			return true
		case b != nil:
			return false
		default:
			return views[i].CreatedAt.After(views[j].CreatedAt)
		}
	})
	return views, nil
}

func (s *Service) participantThread(ctx context.Context, threadID, userID string) (*MessageThread, string, error) {
	threadID, err := ids.Parse("threadId", threadID)
	if err != nil {
		return nil, "", err
	}
	userID, err = ids.Parse("userId", userID)
	if err != nil {
		return nil, "", err
	}

	thread, err := s.repo.GetThread(ctx, threadID)
	if err != nil {
		return nil, "", err
	}
	if !thread.HasParticipant(userID) {
		return nil, "", ErrNotParticipant
	}
	return thread, userID, nil
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewLength]) + "…"
}
