package assistantRepository

const (
	queryCreateCommandLog = `
		INSERT INTO command_logs (
			id, source, utterance, rule, response, audio_url, created_at
		) VALUES (
			:id, :source, :utterance, :rule, :response, :audio_url, :created_at
		)
	`

	queryGetCommandLogs = `
		SELECT
			id, source, utterance, rule, response, audio_url, created_at
		FROM command_logs
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountCommandLogs = `
		SELECT COUNT(*) FROM command_logs
	`

	queryCreateReminder = `
		INSERT INTO reminders (
			id, text, time_text, due_at, delivered, created_at
		) VALUES (
			:id, :text, :time_text, :due_at, :delivered, :created_at
		)
	`

	queryGetDueReminders = `
		SELECT
			id, text, time_text, due_at, delivered, created_at
		FROM reminders
		WHERE delivered = FALSE AND due_at IS NOT NULL AND due_at <= :now
		ORDER BY due_at ASC
	`

	queryMarkReminderDelivered = `
		UPDATE reminders SET delivered = TRUE WHERE id = :id
	`
)
