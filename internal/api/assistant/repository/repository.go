package assistantRepository

import (
	"context"
	"time"

	"talksy/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Commands:  &commandRepository{q: sqlExecutor, log: r.log},
		Reminders: &reminderRepository{q: sqlExecutor, log: r.log},
		Commit:    commitFunc,
		Rollback:  rollbackFunc,
	}, nil
}

type Client struct {
	Commands interface {
		CreateCommandLog(ctx context.Context, cmd entity.CommandLog) error
		GetCommandLogs(ctx context.Context, limit, offset int) ([]entity.CommandLog, int, error)
	}

	Reminders interface {
		CreateReminder(ctx context.Context, r entity.Reminder) error
		GetDueReminders(ctx context.Context, now time.Time) ([]entity.Reminder, error)
		MarkReminderDelivered(ctx context.Context, id string) error
	}

	Commit   func() error
	Rollback func() error
}

type commandRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type reminderRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
