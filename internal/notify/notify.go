// Package notify carries push notifications to an external delivery service.
// Delivery is fire-and-forget: Notify never reports failure to the caller.
package notify

import (
	"context"

	"family-connect-go/pkg/logger"
)

const (
	TypeConnectionRequest  = "connection_request"
	TypeConnectionAccepted = "connection_accepted"
	TypeNewMessage         = "new_message"
)

type Notification struct {
	UserIDs []string          `json:"userIds"`
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Data    map[string]string `json:"data,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type Nop struct{}

func (Nop) Notify(context.Context, Notification) {}

// LogNotifier writes notifications to the log. Used when no broker is configured.
type LogNotifier struct {
	log logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, notification Notification) {
	if len(notification.UserIDs) == 0 {
		return
	}
	n.log.Info("notify: push",
		"user_ids", notification.UserIDs,
		"title", notification.Title,
		"type", notification.Data["type"],
	)
}
