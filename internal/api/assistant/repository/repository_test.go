package assistantRepository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedQueriesBind(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		query string
		args  map[string]interface{}
		want  int
	}{
		{"create command log", queryCreateCommandLog, map[string]interface{}{
			"id": "1", "source": "text", "utterance": "hi", "rule": "greeting", "response": "hello", "audio_url": nil, "created_at": now,
		}, 7},
		{"get command logs", queryGetCommandLogs, map[string]interface{}{"limit": 10, "offset": 0}, 2},
		{"create reminder", queryCreateReminder, map[string]interface{}{
			"id": "1", "text": "call mom", "time_text": "5 pm", "due_at": now, "delivered": false, "created_at": now,
		}, 6},
		{"due reminders", queryGetDueReminders, map[string]interface{}{"now": now}, 1},
		{"mark delivered", queryMarkReminderDelivered, map[string]interface{}{"id": "1"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := sqlx.Named(tt.query, tt.args)
			require.NoError(t, err)
			assert.Len(t, args, tt.want)

			bound := sqlx.Rebind(sqlx.DOLLAR, query)
			assert.NotContains(t, bound, "?")
			assert.NotContains(t, bound, ":")
		})
	}
}

func TestMakeReminder(t *testing.T) {
	due := time.Date(2024, 3, 9, 17, 0, 0, 0, time.UTC)
	r := &reminderRepository{}

	got := r.makeReminder(ReminderDB{
		ID:       sql.NullString{String: "01HX", Valid: true},
		Text:     sql.NullString{String: "call mom", Valid: true},
		TimeText: sql.NullString{String: "5 pm", Valid: true},
		DueAt:    sql.NullTime{Time: due, Valid: true},
	})
	require.NotNil(t, got.DueAt)
	assert.Equal(t, due, *got.DueAt)
	assert.Equal(t, "call mom", got.Text)

	got = r.makeReminder(ReminderDB{ID: sql.NullString{String: "01HY", Valid: true}})
	assert.Nil(t, got.DueAt)
	assert.Empty(t, got.TimeText)
}

func TestMakeCommandLog(t *testing.T) {
	c := &commandRepository{}

	got := c.makeCommandLog(CommandLogDB{
		ID:        sql.NullString{String: "01HX", Valid: true},
		Source:    sql.NullString{String: "voice", Valid: true},
		Utterance: sql.NullString{String: "weather in Paris", Valid: true},
		Rule:      sql.NullString{String: "weather", Valid: true},
		Response:  sql.NullString{String: "The weather in Paris is clear sky.", Valid: true},
	})
	assert.Equal(t, "voice", string(got.Source))
	assert.Equal(t, "weather", got.Rule)
	assert.Empty(t, got.AudioURL)
}
