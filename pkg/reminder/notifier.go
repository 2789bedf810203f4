package reminder

import (
	"context"

	"talksy/internal/entity"

	"github.com/sirupsen/logrus"
)

// MessageSender matches the WhatsApp sender.
type MessageSender interface {
	SendMessage(ctx context.Context, phoneNumber, message string) error
}

type logNotifier struct {
	log *logrus.Logger
}

// NewLogNotifier delivers reminders as log lines.
func NewLogNotifier(log *logrus.Logger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) Notify(_ context.Context, r entity.Reminder) error {
	n.log.WithFields(logrus.Fields{
		"reminder_id": r.ID,
		"time_text":   r.TimeText,
	}).Info("Reminder: " + r.Text)
	return nil
}

type messageNotifier struct {
	sender MessageSender
	number string
}

// NewMessageNotifier delivers reminders as messages to number.
func NewMessageNotifier(sender MessageSender, number string) Notifier {
	return &messageNotifier{sender: sender, number: number}
}

func (n *messageNotifier) Notify(ctx context.Context, r entity.Reminder) error {
	return n.sender.SendMessage(ctx, n.number, Message(r))
}

func Message(r entity.Reminder) string {
	return "Reminder: " + r.Text
}
