package entity

import "time"

type Reminder struct {
	ID        string     `db:"id"`
	Text      string     `db:"text"`
	TimeText  string     `db:"time_text"`
	DueAt     *time.Time `db:"due_at"`
	Delivered bool       `db:"delivered"`
	CreatedAt time.Time  `db:"created_at"`
}

// Due reports whether the reminder has a due time at or before now and has
// not been delivered yet.
func (r Reminder) Due(now time.Time) bool {
	return !r.Delivered && r.DueAt != nil && !r.DueAt.After(now)
}
