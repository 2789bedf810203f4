// Package reminder stores spoken reminders and delivers them once due.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"talksy/internal/entity"
	"talksy/pkg/failure"

	"github.com/sirupsen/logrus"
)

type Store interface {
	CreateReminder(ctx context.Context, r entity.Reminder) error
	GetDueReminders(ctx context.Context, now time.Time) ([]entity.Reminder, error)
	MarkReminderDelivered(ctx context.Context, id string) error
}

type Notifier interface {
	Notify(ctx context.Context, r entity.Reminder) error
}

type IDGenerator func(t time.Time) (string, error)

type IReminder interface {
	Create(ctx context.Context, text, timeText string) (string, error)
	DeliverDue(ctx context.Context) (int, error)
}

type service struct {
	store    Store
	notifier Notifier
	newID    IDGenerator
	now      func() time.Time
	log      *logrus.Logger
}

func New(store Store, notifier Notifier, newID IDGenerator, log *logrus.Logger) IReminder {
	return NewWithClock(store, notifier, newID, log, time.Now)
}

func NewWithClock(store Store, notifier Notifier, newID IDGenerator, log *logrus.Logger, now func() time.Time) IReminder {
	return &service{
		store:    store,
		notifier: notifier,
		newID:    newID,
		now:      now,
		log:      log,
	}
}

func (s *service) Create(ctx context.Context, text, timeText string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", failure.New(failure.InvalidInput, "reminder", errors.New("empty reminder"))
	}

	now := s.now()
	id, err := s.newID(now)
	if err != nil {
		return "", failure.New(failure.Upstream, "reminder", err)
	}

	r := entity.Reminder{
		ID:        id,
		Text:      text,
		TimeText:  strings.TrimSpace(timeText),
		CreatedAt: now,
	}

	if r.TimeText != "" {
		due, err := ParseTime(r.TimeText, now)
		if err != nil {
			// "look at the stars" is a reminder without a time, not one due at "the stars".
			s.log.WithFields(logrus.Fields{
				"reminder_id": id,
				"time_text":   r.TimeText,
			}).Info("Reminder time not recognized, storing without a due time")
			r.Text = r.Text + " at " + r.TimeText
			r.TimeText = ""
		} else {
			r.DueAt = &due
		}
	}

	if err := s.store.CreateReminder(ctx, r); err != nil {
		s.log.WithFields(logrus.Fields{
			"reminder_id": id,
			"error":       err.Error(),
		}).Error("Failed to store reminder")
		return "", failure.New(failure.Upstream, "reminder", err)
	}

	if r.TimeText == "" {
		return fmt.Sprintf("I've noted your reminder: '%s'", r.Text), nil
	}
	return fmt.Sprintf("I'll remind you: '%s' at %s", r.Text, r.TimeText), nil
}

// DeliverDue notifies every reminder that has come due and marks it
// delivered. A failed notification leaves the reminder pending for the next
// run.
func (s *service) DeliverDue(ctx context.Context) (int, error) {
	due, err := s.store.GetDueReminders(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to load due reminders: %w", err)
	}

	delivered := 0
	var errs []error
	for _, r := range due {
		if err := s.notifier.Notify(ctx, r); err != nil {
			s.log.WithFields(logrus.Fields{
				"reminder_id": r.ID,
				"error":       err.Error(),
			}).Warn("Failed to deliver reminder")
			errs = append(errs, err)
			continue
		}

		if err := s.store.MarkReminderDelivered(ctx, r.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		delivered++
	}

	return delivered, errors.Join(errs...)
}
