package assistantRepository

import (
	"context"
	"database/sql"
	"time"

	"talksy/internal/entity"
	contextPkg "talksy/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ReminderDB struct {
	ID        sql.NullString `db:"id"`
	Text      sql.NullString `db:"text"`
	TimeText  sql.NullString `db:"time_text"`
	DueAt     sql.NullTime   `db:"due_at"`
	Delivered sql.NullBool   `db:"delivered"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r *reminderRepository) CreateReminder(ctx context.Context, reminder entity.Reminder) error {
	requestID := contextPkg.GetRequestID(ctx)

	dueAt := sql.NullTime{}
	if reminder.DueAt != nil {
		dueAt = sql.NullTime{Time: *reminder.DueAt, Valid: true}
	}

	argsKV := map[string]interface{}{
		"id":         reminder.ID,
		"text":       reminder.Text,
		"time_text":  sql.NullString{String: reminder.TimeText, Valid: reminder.TimeText != ""},
		"due_at":     dueAt,
		"delivered":  reminder.Delivered,
		"created_at": reminder.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateReminder, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateReminder")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating reminder")
		return err
	}

	return nil
}

func (r *reminderRepository) GetDueReminders(ctx context.Context, now time.Time) ([]entity.Reminder, error) {
	query, args, err := sqlx.Named(queryGetDueReminders, map[string]interface{}{"now": now})
	if err != nil {
		r.log.WithError(err).Error("GetDueReminders named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []ReminderDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithError(err).Error("GetDueReminders execution err")
		return nil, err
	}

	reminders := make([]entity.Reminder, 0, len(rows))
	for _, row := range rows {
		reminders = append(reminders, r.makeReminder(row))
	}

	return reminders, nil
}

func (r *reminderRepository) MarkReminderDelivered(ctx context.Context, id string) error {
	query, args, err := sqlx.Named(queryMarkReminderDelivered, map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"reminder_id": id,
			"error":       err.Error(),
		}).Error("Database error when marking reminder delivered")
		return err
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *reminderRepository) makeReminder(row ReminderDB) entity.Reminder {
	reminder := entity.Reminder{
		ID:        row.ID.String,
		Text:      row.Text.String,
		TimeText:  row.TimeText.String,
		Delivered: row.Delivered.Bool,
		CreatedAt: row.CreatedAt,
	}
	if row.DueAt.Valid {
		due := row.DueAt.Time
		reminder.DueAt = &due
	}
	return reminder
}
