package events

import (
	"context"
	"strings"
	"time"

	"family-connect-go/internal/domain/apperr"
	"family-connect-go/internal/domain/ids"
	"family-connect-go/internal/domain/user"
)

type Service struct {
	repo  Repository
	users UserDirectory
	now   func() time.Time
}

func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{
		repo:  repo,
		users: users,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *Service) Create(ctx context.Context, input EventInput) (*Event, error) {
	ownerID, err := ids.Parse("userId", input.UserID)
	if err != nil {
		return nil, err
	}

	title := trimmed(input.Title)
	location := trimmed(input.Location)
	category := trimmed(input.Category)
	rawDate := trimmed(input.Date)
	switch {
	case title == "":
		return nil, apperr.Validation("title is required")
	case rawDate == "":
		return nil, apperr.Validation("date is required")
	case location == "":
		return nil, apperr.Validation("location is required")
	case category == "":
		return nil, apperr.Validation("category is required")
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return nil, err
	}

	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	event := Event{
		ID:          ids.New(),
		UserID:      ownerID,
		Title:       title,
		Description: optional(input.Description),
		Date:        date,
		Time:        optional(input.Time),
		Location:    location,
		Category:    category,
		ImageURL:    optional(input.ImageURL),
	}
	if err := s.repo.Create(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *Service) Get(ctx context.Context, eventID string) (*EventView, error) {
	eventID, err := ids.Parse("eventId", eventID)
	if err != nil {
		return nil, err
	}
	event, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountAttendees(ctx, []string{eventID})
	if err != nil {
		return nil, err
	}
	return &EventView{Event: *event, AttendeeCount: counts[eventID]}, nil
}

// List returns upcoming events soonest first, or every event when includePast is set.
func (s *Service) List(ctx context.Context, includePast bool) ([]EventView, error) {
	var from time.Time
	if !includePast {
		now := s.now()
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	events, err := s.repo.List(ctx, from)
	if err != nil {
		return nil, err
	}

	eventIDs := make([]string, 0, len(events))
	for _, event := range events {
		eventIDs = append(eventIDs, event.ID)
	}
	counts, err := s.repo.CountAttendees(ctx, eventIDs)
	if err != nil {
		return nil, err
	}

	result := make([]EventView, 0, len(events))
	for _, event := range events {
		result = append(result, EventView{Event: event, AttendeeCount: counts[event.ID]})
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, eventID string, input EventInput) (*Event, error) {
	event, err := s.ownedEvent(ctx, eventID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if event.Title = trimmed(input.Title); event.Title == "" {
			return nil, apperr.Validation("title is required")
		}
	}
	if input.Location != nil {
		if event.Location = trimmed(input.Location); event.Location == "" {
			return nil, apperr.Validation("location is required")
		}
	}
	if input.Category != nil {
		if event.Category = trimmed(input.Category); event.Category == "" {
			return nil, apperr.Validation("category is required")
		}
	}
	if input.Date != nil {
		date, err := parseDate(trimmed(input.Date))
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	if input.Description != nil {
		event.Description = optional(input.Description)
	}
	if input.Time != nil {
		event.Time = optional(input.Time)
	}
	if input.ImageURL != nil {
		event.ImageURL = optional(input.ImageURL)
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Service) Delete(ctx context.Context, eventID, userID string) error {
	event, err := s.ownedEvent(ctx, eventID, userID)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, event.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEventNotFound
	}
	return nil
}

// Attend is idempotent.
func (s *Service) Attend(ctx context.Context, eventID, userID string) error {
	eventID, userID, err := s.attendance(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	return s.repo.AddAttendee(ctx, eventID, userID)
}

// Unattend is idempotent.
func (s *Service) Unattend(ctx context.Context, eventID, userID string) error {
	eventID, userID, err := s.attendance(ctx, eventID, userID)
	if err != nil {
		return err
	}
	return s.repo.RemoveAttendee(ctx, eventID, userID)
}

func (s *Service) ListAttendees(ctx context.Context, eventID string) ([]Attendee, error) {
	eventID, err := ids.Parse("eventId", eventID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Get(ctx, eventID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}
	userIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		userIDs = append(userIDs, row.UserID)
	}
	profiles, err := s.users.PublicUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	result := make([]Attendee, 0, len(rows))
	for _, row := range rows {
		attendee := Attendee{UserID: row.UserID, AttendedAt: row.CreatedAt}
		if profile, ok := profiles[row.UserID]; ok {
			attendee.User = &profile
		}
		result = append(result, attendee)
	}
	return result, nil
}

func (s *Service) ownedEvent(ctx context.Context, eventID, userID string) (*Event, error) {
	eventID, err := ids.Parse("eventId", eventID)
	if err != nil {
		return nil, err
	}
	userID, err = ids.Parse("userId", userID)
	if err != nil {
		return nil, err
	}
	event, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.UserID != userID {
		return nil, ErrNotOwner
	}
	return event, nil
}

func (s *Service) attendance(ctx context.Context, eventID, userID string) (string, string, error) {
	eventID, err := ids.Parse("eventId", eventID)
	if err != nil {
		return "", "", err
	}
	userID, err = ids.Parse("userId", userID)
	if err != nil {
		return "", "", err
	}
	if _, err := s.repo.Get(ctx, eventID); err != nil {
		return "", "", err
	}
	return eventID, userID, nil
}

func (s *Service) requireUser(ctx context.Context, userID string) error {
	profiles, err := s.users.PublicUsers(ctx, []string{userID})
	if err != nil {
		return err
	}
	if _, ok := profiles[userID]; !ok {
		return user.ErrUserNotFound
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperr.Validation("date must use the YYYY-MM-DD format")
	}
	return date, nil
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func optional(value *string) *string {
	v := trimmed(value)
	if v == "" {
		return nil
	}
	return &v
}
