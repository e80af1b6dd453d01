package events

import (
	"context"
	"time"

	"family-connect-go/internal/domain/user"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	Get(ctx context.Context, id string) (*Event, error)
	// List returns events dated on or after from, soonest first. A zero from returns every event.
	List(ctx context.Context, from time.Time) ([]Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) (bool, error)

	// AddAttendee does nothing when the pair is already present.
	AddAttendee(ctx context.Context, eventID, userID string) error
	RemoveAttendee(ctx context.Context, eventID, userID string) error
	ListAttendees(ctx context.Context, eventID string) ([]EventAttendee, error)
	CountAttendees(ctx context.Context, eventIDs []string) (map[string]int64, error)
}

type UserDirectory interface {
	PublicUsers(ctx context.Context, ids []string) (map[string]user.PublicUser, error)
}
