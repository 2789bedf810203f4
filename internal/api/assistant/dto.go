package assistant

import (
	"mime/multipart"
	"time"

	"talksy/pkg/response"
)

type ProcessTextRequest struct {
	Command string `json:"command" validate:"max=1000"`
}

type ProcessTextResponse struct {
	Response string `json:"response"`
	AudioURL string `json:"audio_url,omitempty"`
}

type GreetResponse struct {
	Message  string `json:"message"`
	AudioURL string `json:"audio_url,omitempty"`
}

type ListenRequest struct {
	AudioFile *multipart.FileHeader `validate:"required"`
}

type ListenResponse struct {
	Success         bool   `json:"success"`
	Command         string `json:"command"`
	Acknowledgement string `json:"acknowledgement,omitempty"`
	Response        string `json:"response,omitempty"`
	AudioURL        string `json:"audio_url,omitempty"`
}

type SpeakRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

type SpeakResponse struct {
	Success  bool   `json:"success"`
	Text     string `json:"text"`
	AudioURL string `json:"audio_url,omitempty"`
}

type HistoryQuery struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

type CommandHistory struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Command   string    `json:"command"`
	Rule      string    `json:"rule"`
	Response  string    `json:"response"`
	AudioURL  string    `json:"audio_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Commands   []CommandHistory    `json:"commands"`
	Pagination response.Pagination `json:"pagination"`
}

// SocketReply is written for every text frame received on the websocket.
type SocketReply struct {
	Command  string `json:"command"`
	Response string `json:"response"`
	Exit     bool   `json:"exit,omitempty"`
}
