package kafka

import (
	"context"
	"encoding/json"
	"time"

	"family-connect-go/internal/notify"
	"family-connect-go/pkg/logger"
	kafkago "github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=notifier.go -destination=mock_writer_test.go -package=kafka

// Writer is the subset of *kafkago.Writer used for publishing.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Recorder counts publish outcomes.
type Recorder interface {
	NotificationPublished(outcome string)
}

type Notifier struct {
	writer   Writer
	log      logger.Logger
	recorder Recorder
}

func NewNotifier(writer Writer, log logger.Logger, recorder Recorder) *Notifier {
	return &Notifier{writer: writer, log: log, recorder: recorder}
}

// NewWriter builds an async writer: WriteMessages returns once the message is queued and
// broker failures surface through Completion.
func NewWriter(brokers []string, topic string, writeTimeout time.Duration, log logger.Logger, recorder Recorder) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		Async:                  true,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafkago.Message, err error) {
			if err != nil {
				log.Error("notify: kafka delivery failed", "err", err, "count", len(messages))
				record(recorder, "failed")
				return
			}
			record(recorder, "delivered")
		},
	}
}

// Notify publishes one message per recipient keyed by user id so a user's notifications stay ordered.
func (n *Notifier) Notify(ctx context.Context, notification notify.Notification) {
	if len(notification.UserIDs) == 0 {
		return
	}

	messages := make([]kafkago.Message, 0, len(notification.UserIDs))
	for _, userID := range notification.UserIDs {
		payload, err := json.Marshal(notify.Notification{
			UserIDs: []string{userID},
			Title:   notification.Title,
			Body:    notification.Body,
			Data:    notification.Data,
		})
		if err != nil {
			n.log.InternalError("notify: marshal notification", err, "user_id", userID)
			record(n.recorder, "failed")
			return
		}
		messages = append(messages, kafkago.Message{Key: []byte(userID), Value: payload})
	}

	// The request context is cancelled when the handler returns; delivery must outlive it.
	if err := n.writer.WriteMessages(context.WithoutCancel(ctx), messages...); err != nil {
		n.log.InternalError("notify: publish to kafka", err, "count", len(messages))
		record(n.recorder, "failed")
		return
	}
	record(n.recorder, "queued")
}

func (n *Notifier) Close() error {
	return n.writer.Close()
}

func record(recorder Recorder, outcome string) {
	if recorder != nil {
		recorder.NotificationPublished(outcome)
	}
}
