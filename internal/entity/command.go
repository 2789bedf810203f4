package entity

import "time"

type CommandSource string

const (
	CommandSourceText    CommandSource = "text"
	CommandSourceVoice   CommandSource = "voice"
	CommandSourceSocket  CommandSource = "ws"
	CommandSourceConsole CommandSource = "console"
)

// CommandLog is one dispatched utterance and the reply it produced.
type CommandLog struct {
	ID        string        `db:"id"`
	Source    CommandSource `db:"source"`
	Utterance string        `db:"utterance"`
	Rule      string        `db:"rule"`
	Response  string        `db:"response"`
	AudioURL  string        `db:"audio_url"`
	CreatedAt time.Time     `db:"created_at"`
}
