package assistant

import "talksy/pkg/response"

var (
	ErrInvalidAudioFile           = response.NewError(400, "invalid audio file")
	ErrTranscriptionNotConfigured = response.NewError(503, "speech recognition is not configured")
	ErrSpeechNotConfigured        = response.NewError(503, "speech synthesis is not configured")
	ErrHistoryNotConfigured       = response.NewError(503, "command history is not configured")
	ErrSpeechFailed               = response.NewError(502, "failed to generate speech")
	ErrAudioNotFound              = response.NewError(404, "audio file not found")
)
