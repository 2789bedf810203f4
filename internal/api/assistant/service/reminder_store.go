package assistantService

import (
	"context"
	"time"

	assistantRepository "talksy/internal/api/assistant/repository"
	"talksy/internal/entity"
	"talksy/pkg/reminder"
)

type reminderStore struct {
	repo assistantRepository.Repository
}

// NewReminderStore persists reminders through the assistant repository.
func NewReminderStore(repo assistantRepository.Repository) reminder.Store {
	return &reminderStore{repo: repo}
}

func (s *reminderStore) CreateReminder(ctx context.Context, r entity.Reminder) error {
	client, err := s.repo.NewClient(false)
	if err != nil {
		return err
	}
	return client.Reminders.CreateReminder(ctx, r)
}

func (s *reminderStore) GetDueReminders(ctx context.Context, now time.Time) ([]entity.Reminder, error) {
	client, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}
	return client.Reminders.GetDueReminders(ctx, now)
}

func (s *reminderStore) MarkReminderDelivered(ctx context.Context, id string) error {
	client, err := s.repo.NewClient(false)
	if err != nil {
		return err
	}
	return client.Reminders.MarkReminderDelivered(ctx, id)
}
