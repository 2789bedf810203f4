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

type CommandLogDB struct {
	ID        sql.NullString `db:"id"`
	Source    sql.NullString `db:"source"`
	Utterance sql.NullString `db:"utterance"`
	Rule      sql.NullString `db:"rule"`
	Response  sql.NullString `db:"response"`
	AudioURL  sql.NullString `db:"audio_url"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r *commandRepository) CreateCommandLog(ctx context.Context, cmd entity.CommandLog) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         cmd.ID,
		"source":     string(cmd.Source),
		"utterance":  cmd.Utterance,
		"rule":       cmd.Rule,
		"response":   cmd.Response,
		"audio_url":  sql.NullString{String: cmd.AudioURL, Valid: cmd.AudioURL != ""},
		"created_at": cmd.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateCommandLog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateCommandLog")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating command log")
		return err
	}

	return nil
}

func (r *commandRepository) GetCommandLogs(ctx context.Context, limit, offset int) ([]entity.CommandLog, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	if err := r.q.QueryRowxContext(ctx, queryCountCommandLogs).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountCommandLogs execution err")
		return nil, 0, err
	}

	argsKV := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}

	query, args, err := sqlx.Named(queryGetCommandLogs, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommandLogs named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []CommandLogDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommandLogs execution err")
		return nil, 0, err
	}

	commands := make([]entity.CommandLog, 0, len(rows))
	for _, row := range rows {
		commands = append(commands, r.makeCommandLog(row))
	}

	return commands, total, nil
}

func (r *commandRepository) makeCommandLog(row CommandLogDB) entity.CommandLog {
	return entity.CommandLog{
		ID:        row.ID.String,
		Source:    entity.CommandSource(row.Source.String),
		Utterance: row.Utterance.String,
		Rule:      row.Rule.String,
		Response:  row.Response.String,
		AudioURL:  row.AudioURL.String,
		CreatedAt: row.CreatedAt,
	}
}
