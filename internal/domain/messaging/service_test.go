package messaging

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"family-connect-go/internal/domain/apperr"
	"family-connect-go/internal/domain/user"
	"family-connect-go/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userA = "00000000-0000-4000-8000-00000000000a"
	userB = "00000000-0000-4000-8000-00000000000b"
	userC = "00000000-0000-4000-8000-00000000000c"
	ghost = "00000000-0000-4000-8000-0000000000ff"
)

var errStoreDown = errors.New("store down")

type fakeMessagingRepo struct {
	mu         sync.Mutex
	threads    map[string]*MessageThread
	messages   []Message
	failUpdate bool
}

func newFakeMessagingRepo() *fakeMessagingRepo {
	return &fakeMessagingRepo{threads: make(map[string]*MessageThread)}
}

func (r *fakeMessagingRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	r.mu.Lock()
	snapshot := append([]Message(nil), r.messages...)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.messages = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *fakeMessagingRepo) GetThread(ctx context.Context, id string) (*MessageThread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	thread, ok := r.threads[id]
	if !ok {
		return nil, ErrThreadNotFound
	}
	copied := *thread
	return &copied, nil
}

func (r *fakeMessagingRepo) GetThreadByPair(ctx context.Context, user1ID, user2ID string) (*MessageThread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, thread := range r.threads {
		if thread.User1ID == user1ID && thread.User2ID == user2ID {
			copied := *thread
			return &copied, nil
		}
	}
	return nil, ErrThreadNotFound
}

func (r *fakeMessagingRepo) CreateThread(ctx context.Context, thread *MessageThread) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if thread.User1ID >= thread.User2ID {
		return errors.New("pair not in canonical order")
	}
	for _, existing := range r.threads {
		if existing.User1ID == thread.User1ID && existing.User2ID == thread.User2ID {
			return ErrThreadExists
		}
	}
	thread.CreatedAt = time.Now()
	copied := *thread
	r.threads[thread.ID] = &copied
	return nil
}

func (r *fakeMessagingRepo) ListThreadsForUser(ctx context.Context, userID string) ([]MessageThread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]MessageThread, 0)
	for _, thread := range r.threads {
		if thread.HasParticipant(userID) {
			result = append(result, *thread)
		}
	}
	return result, nil
}

func (r *fakeMessagingRepo) UpdateLastMessage(ctx context.Context, threadID, text string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return errStoreDown
	}
	thread, ok := r.threads[threadID]
	if !ok {
		return ErrThreadNotFound
	}
	thread.LastMessage = &text
	thread.LastMessageAt = &at
	return nil
}

func (r *fakeMessagingRepo) CreateMessage(ctx context.Context, message *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessagingRepo) ListMessages(ctx context.Context, threadID string) ([]Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Message, 0)
	for _, message := range r.messages {
		if message.ThreadID == threadID {
			result = append(result, message)
		}
	}
	return result, nil
}

func (r *fakeMessagingRepo) MarkRead(ctx context.Context, threadID, readerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var updated int64
	for i := range r.messages {
		m := &r.messages[i]
		if m.ThreadID == threadID && m.SenderID != readerID && !m.Read {
			m.Read = true
			updated++
		}
	}
	return updated, nil
}

func (r *fakeMessagingRepo) CountUnread(ctx context.Context, threadID, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, m := range r.messages {
		if m.ThreadID == threadID && m.SenderID != userID && !m.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeMessagingRepo) CountUnreadByThread(ctx context.Context, userID string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[string]int64)
	for _, m := range r.messages {
		thread := r.threads[m.ThreadID]
		if thread != nil && thread.HasParticipant(userID) && m.SenderID != userID && !m.Read {
			result[m.ThreadID]++
		}
	}
	return result, nil
}

func (r *fakeMessagingRepo) CountUnreadTotal(ctx context.Context, userID string) (int64, error) {
	byThread, _ := r.CountUnreadByThread(ctx, userID)
	var total int64
	for _, count := range byThread {
		total += count
	}
	return total, nil
}

type fakeBlocks struct {
	pairs [][2]string
}

func (b *fakeBlocks) IsBlocked(ctx context.Context, x, y string) (bool, error) {
	for _, pair := range b.pairs {
		if (pair[0] == x && pair[1] == y) || (pair[0] == y && pair[1] == x) {
			return true, nil
		}
	}
	return false, nil
}

func (b *fakeBlocks) BlockedUserIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	result := make(map[string]struct{})
	for _, pair := range b.pairs {
		if pair[0] == userID {
			result[pair[1]] = struct{}{}
		}
		if pair[1] == userID {
			result[pair[0]] = struct{}{}
		}
	}
	return result, nil
}

type fakeDirectory map[string]user.PublicUser

func (d fakeDirectory) PublicUsers(ctx context.Context, ids []string) (map[string]user.PublicUser, error) {
	result := make(map[string]user.PublicUser)
	for _, id := range ids {
		if profile, ok := d[id]; ok {
			result[id] = profile
		}
	}
	return result, nil
}

type recordingNotifier struct {
	sent []notify.Notification
}

func (n *recordingNotifier) Notify(ctx context.Context, notification notify.Notification) {
	n.sent = append(n.sent, notification)
}

type fixture struct {
	repo     *fakeMessagingRepo
	blocks   *fakeBlocks
	notifier *recordingNotifier
	clock    time.Time
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:     newFakeMessagingRepo(),
		blocks:   &fakeBlocks{},
		notifier: &recordingNotifier{},
		clock:    time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}
	directory := fakeDirectory{
		userA: {ID: userA, FamilyName: "As"},
		userB: {ID: userB, FamilyName: "Bs"},
		userC: {ID: userC, FamilyName: "Cs"},
	}
	f.svc = NewService(f.repo, directory, f.blocks, f.notifier)
	f.svc.now = func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	return f
}

func TestGetOrCreateThreadIsIdempotentInEitherOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.GetOrCreateThread(ctx, userB, userA)
	require.NoError(t, err)
	assert.Equal(t, userA, first.User1ID)
	assert.Equal(t, userB, first.User2ID)

	for i := 0; i < 3; i++ {
		again, err := f.svc.GetOrCreateThread(ctx, userA, userB)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		again, err = f.svc.GetOrCreateThread(ctx, userB, userA)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	}
	assert.Len(t, f.repo.threads, 1)
}

func TestGetOrCreateThreadConcurrent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var wg sync.WaitGroup
	threadIDs := make([]string, 10)
	for i := range threadIDs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := userA, userB
			if i%2 == 0 {
				a, b = b, a
			}
			thread, err := f.svc.GetOrCreateThread(ctx, a, b)
			if err == nil {
				threadIDs[i] = thread.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range threadIDs {
		assert.Equal(t, threadIDs[0], id)
	}
	assert.Len(t, f.repo.threads, 1)
}

func TestGetOrCreateThreadRejectsInvalidPairs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.GetOrCreateThread(ctx, userA, userA)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = f.svc.GetOrCreateThread(ctx, userA, "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = f.svc.GetOrCreateThread(ctx, userA, ghost)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	f.blocks.pairs = append(f.blocks.pairs, [2]string{userB, userA})
	_, err = f.svc.GetOrCreateThread(ctx, userA, userB)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestSendUpdatesThreadSummary(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	thread, err := f.svc.GetOrCreateThread(ctx, userA, userB)
	require.NoError(t, err)

	message, err := f.svc.Send(ctx, thread.ID, userA, "hello there")
	require.NoError(t, err)
	assert.Equal(t, "hello there", message.Text)
	assert.False(t, message.Read)

	stored, err := f.repo.GetThread(ctx, thread.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastMessage)
	assert.Equal(t, "hello there", *stored.LastMessage)
	assert.Equal(t, message.CreatedAt, *stored.LastMessageAt)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, []string{userB}, f.notifier.sent[0].UserIDs)
	assert.Equal(t, "As", f.notifier.sent[0].Title)
	assert.Equal(t, thread.ID, f.notifier.sent[0].Data["threadId"])
}

func TestSendKeepsSurroundingWhitespace(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	thread, err := f.svc.GetOrCreateThread(ctx, userA, userB)
	require.NoError(t, err)

	text := "  - milk\n  - bread\n"
	message, err := f.svc.Send(ctx, thread.ID, userA, text)
	require.NoError(t, err)
	assert.Equal(t, text, message.Text)

	messages, err := f.svc.ListMessages(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, text, messages[0].Text)

	stored, err := f.repo.GetThread(ctx, thread.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastMessage)
	assert.Equal(t, text, *stored.LastMessage)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "- milk\n  - bread", f.notifier.sent[0].Body)
}

func TestSendValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	thread, err := f.svc.GetOrCreateThread(ctx, userA, userB)
	require.NoError(t, err)

	_, err = f.svc.Send(ctx, thread.ID, userA, "   ")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = f.svc.Send(ctx, thread.ID, userA, strings.Repeat("x", maxMessageLength+1))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = f.svc.Send(ctx, thread.ID, userC, "hi")
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = f.svc.Send(ctx, ghost, userA, "hi")
	assert.ErrorIs(t, err, ErrThreadNotFound)

	f.blocks.pairs = append(f.blocks.pairs, [2]string{userA, userB})
	_, err = f.svc.Send(ctx, thread.ID, userB, "hi")
	assert.ErrorIs(t, err, ErrBlocked)
	assert.Empty(t, f.notifier.sent)
}

func TestSendRollsBackWhenSummaryUpdateFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	thread, err := f.svc.GetOrCreateThread(ctx, userA, userB)
	require.NoError(t, err)

	f.repo.failUpdate = true
	_, err = f.svc.Send(ctx, thread.ID, userA, "hello")
	assert.ErrorIs(t, err, errStoreDown)

	messages, err := f.svc.ListMessages(ctx, thread.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.Empty(t, f.notifier.sent)
}

func TestMarkThreadReadOnlyAffectsOtherSender(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	thread, err := f.svc.GetOrCreateThread(ctx, userA, userB)
	require.NoError(t, err)

	_, err = f.svc.Send(ctx, thread.ID, userA, "one")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, thread.ID, userA, "two")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, thread.ID, userB, "reply")
	require.NoError(t, err)

	unreadB, err := f.svc.UnreadCount(ctx, thread.ID, userB)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unreadB)

	updated, err := f.svc.MarkThreadRead(ctx, thread.ID, userB)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	unreadB, err = f.svc.UnreadCount(ctx, thread.ID, userB)
	require.NoError(t, err)
	assert.Zero(t, unreadB)

	// B's own reply is still unread for A.
	unreadA, err := f.svc.UnreadCount(ctx, thread.ID, userA)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unreadA)

	updated, err = f.svc.MarkThreadRead(ctx, thread.ID, userB)
	require.NoError(t, err)
	assert.Zero(t, updated)

	_, err = f.svc.MarkThreadRead(ctx, thread.ID, userC)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestListMessagesOldestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	thread, err := f.svc.GetOrCreateThread(ctx, userA, userB)
	require.NoError(t, err)

	for _, text := range []string{"first", "second", "third"} {
		_, err := f.svc.Send(ctx, thread.ID, userA, text)
		require.NoError(t, err)
	}

	messages, err := f.svc.ListMessages(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Text)
	assert.True(t, messages[0].CreatedAt.Before(messages[2].CreatedAt))
}

func TestListThreadsOrderingUnreadAndBlocks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	withB, err := f.svc.GetOrCreateThread(ctx, userA, userB)
	require.NoError(t, err)
	withC, err := f.svc.GetOrCreateThread(ctx, userA, userC)
	require.NoError(t, err)

	_, err = f.svc.Send(ctx, withB.ID, userB, "older")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, withC.ID, userC, "newer")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, withC.ID, userC, "newest")
	require.NoError(t, err)

	views, err := f.svc.ListThreads(ctx, userA)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, withC.ID, views[0].ID)
	assert.Equal(t, int64(2), views[0].UnreadCount)
	require.NotNil(t, views[0].OtherUser)
	assert.Equal(t, "Cs", views[0].OtherUser.FamilyName)
	assert.Equal(t, withB.ID, views[1].ID)
	assert.Equal(t, int64(1), views[1].UnreadCount)

	total, err := f.svc.TotalUnread(ctx, userA)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	f.blocks.pairs = append(f.blocks.pairs, [2]string{userC, userA})
	views, err = f.svc.ListThreads(ctx, userA)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, userB, views[0].OtherUserID)
}
