package connections

import (
	"context"
	"errors"
	"sort"
	"strings"

	"family-connect-go/internal/domain/apperr"
	"family-connect-go/internal/domain/ids"
	"family-connect-go/internal/domain/user"
	"family-connect-go/internal/notify"
)

type Service struct {
	repo     Repository
	users    UserDirectory
	blocks   BlockChecker
	notifier notify.Notifier
}

func NewService(repo Repository, users UserDirectory, blocks BlockChecker, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{repo: repo, users: users, blocks: blocks, notifier: notifier}
}

// Request creates a pending connection from userID to targetUserID. Any existing connection
// for the pair, in either direction and any status, is a conflict.
func (s *Service) Request(ctx context.Context, userID, targetUserID string) (*Connection, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return nil, err
	}
	targetUserID, err = ids.Parse("targetUserId", targetUserID)
	if err != nil {
		return nil, err
	}
	if userID == targetUserID {
		return nil, apperr.Validation("cannot connect with yourself")
	}

	profiles, err := s.users.PublicUsers(ctx, []string{userID, targetUserID})
	if err != nil {
		return nil, err
	}
	requester, ok := profiles[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	if _, ok := profiles[targetUserID]; !ok {
		return nil, user.ErrUserNotFound
	}

	blocked, err := s.blocks.IsBlocked(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrBlocked
	}

	low, high := ids.OrderedPair(userID, targetUserID)
	if _, err := s.repo.GetByPair(ctx, low, high); err == nil {
		return nil, ErrConnectionExists
	} else if !errors.Is(err, ErrConnectionNotFound) {
		return nil, err
	}

	connection := Connection{
		ID:           ids.New(),
		UserID:       userID,
		TargetUserID: targetUserID,
		PairLow:      low,
		PairHigh:     high,
		Status:       StatusPending,
	}
	if err := s.repo.Create(ctx, &connection); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Notification{
		UserIDs: []string{targetUserID},
		Title:   "New connection request",
		Body:    requester.FamilyName + " would like to connect",
		Data: map[string]string{
			"type":         notify.TypeConnectionRequest,
			"connectionId": connection.ID,
			"userId":       userID,
		},
	})

	return &connection, nil
}

// Respond moves a pending connection to connected or rejected. Only the requested user may respond.
func (s *Service) Respond(ctx context.Context, connectionID, responderID, status string) (*Connection, error) {
	connectionID, err := ids.Parse("connectionId", connectionID)
	if err != nil {
		return nil, err
	}
	responderID, err = ids.Parse("userId", responderID)
	if err != nil {
		return nil, err
	}
	status = strings.TrimSpace(status)
	switch status {
	case StatusConnected, StatusRejected:
	case StatusPending:
		return nil, ErrUnsupportedResponse
	case "":
		return nil, apperr.Validation("status is required")
	default:
		return nil, apperr.Validation("unknown status %q", status)
	}

	connection, err := s.repo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if connection.TargetUserID != responderID {
		return nil, ErrNotTarget
	}
	if connection.Status != StatusPending {
		return nil, ErrInvalidTransition
	}

	if status == StatusConnected {
		blocked, err := s.blocks.IsBlocked(ctx, connection.UserID, connection.TargetUserID)
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, ErrBlocked
		}
	}

	updated, err := s.repo.UpdateStatus(ctx, connectionID, StatusPending, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost a race with another response.
		return nil, ErrInvalidTransition
	}
	connection.Status = status

	if status == StatusConnected {
		responderName := "Someone"
		if profiles, err := s.users.PublicUsers(ctx, []string{responderID}); err == nil {
			if profile, ok := profiles[responderID]; ok {
				responderName = profile.FamilyName
			}
		}
		s.notifier.Notify(ctx, notify.Notification{
			UserIDs: []string{connection.UserID},
			Title:   "Connection accepted",
			Body:    responderName + " accepted your connection request",
			Data: map[string]string{
				"type":         notify.TypeConnectionAccepted,
				"connectionId": connection.ID,
				"userId":       responderID,
			},
		})
	}

	return connection, nil
}

// ListFor returns every connection the user is part of, newest first. Connections with a
// blocked counterpart are left out.
func (s *Service) ListFor(ctx context.Context, userID string) ([]View, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return nil, err
	}

	connections, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	hidden, err := s.blocks.BlockedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	visible := make([]Connection, 0, len(connections))
	counterparts := make([]string, 0, len(connections))
	for _, connection := range connections {
		counterpart := connection.Counterpart(userID)
		if _, ok := hidden[counterpart]; ok {
			continue
		}
		visible = append(visible, connection)
		counterparts = append(counterparts, counterpart)
	}

	profiles, err := s.users.PublicUsers(ctx, counterparts)
	if err != nil {
		return nil, err
	}

	result := make([]View, 0, len(visible))
	for _, connection := range visible {
		view := View{
			Connection:    connection,
			CounterpartID: connection.Counterpart(userID),
			Direction:     DirectionReceived,
		}
		if connection.UserID == userID {
			view.Direction = DirectionSent
		}
		if profile, ok := profiles[view.CounterpartID]; ok {
			view.Counterpart = &profile
		}
		result = append(result, view)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Delete lets either participant remove a connection in any status.
func (s *Service) Delete(ctx context.Context, connectionID, userID string) error {
	connectionID, err := ids.Parse("connectionId", connectionID)
	if err != nil {
		return err
	}
	userID, err = ids.Parse("userId", userID)
	if err != nil {
		return err
	}

	connection, err := s.repo.GetByID(ctx, connectionID)
	if err != nil {
		return err
	}
	if !connection.Involves(userID) {
		return ErrNotParticipant
	}

	deleted, err := s.repo.Delete(ctx, connectionID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrConnectionNotFound
	}
	return nil
}
