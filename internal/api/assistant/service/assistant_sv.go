package assistantService

import (
	"bytes"
	"context"
	"errors"
	"time"

	"talksy/internal/api/assistant"
	"talksy/internal/entity"
	"talksy/pkg/audio"
	contextPkg "talksy/pkg/context"
	"talksy/pkg/response"

	"github.com/sirupsen/logrus"
)

func (s *assistantService) Greet(ctx context.Context) (*assistant.GreetResponse, error) {
	message := s.clock.Greeting(s.config.UserName, s.config.BotName)

	return &assistant.GreetResponse{
		Message:  message,
		AudioURL: s.speakBestEffort(ctx, message),
	}, nil
}

func (s *assistantService) ProcessText(ctx context.Context, source entity.CommandSource, command string) (*assistant.ProcessTextResponse, error) {
	out := s.dispatcher.Resolve(ctx, command)

	resp := &assistant.ProcessTextResponse{Response: out.Response}
	if s.config.Synthesize {
		resp.AudioURL = s.speakBestEffort(ctx, out.Response)
	}

	s.record(ctx, source, command, string(out.Kind), out.Rule, out.Response, resp.AudioURL)
	return resp, nil
}

func (s *assistantService) Listen(ctx context.Context, req assistant.ListenRequest) (*assistant.ListenResponse, error) {
	if s.transcriber == nil {
		return nil, assistant.ErrTranscriptionNotConfigured
	}

	if err := s.utils.ValidateAudioFile(req.AudioFile); err != nil {
		return nil, response.Wrap(400, err)
	}

	data, err := s.utils.ReadFile(req.AudioFile)
	if err != nil {
		return nil, assistant.ErrInvalidAudioFile
	}

	command, err := s.transcriber.Transcribe(ctx, req.AudioFile.Filename, bytes.NewReader(data))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Transcription failed")
		return &assistant.ListenResponse{Success: false, Command: transcriptionFailure(err)}, nil
	}

	acknowledgement := Acknowledgements[s.pick(len(Acknowledgements))]
	out := s.dispatcher.Resolve(ctx, command)

	resp := &assistant.ListenResponse{
		Success:         true,
		Command:         command,
		Acknowledgement: acknowledgement,
		Response:        out.Response,
		AudioURL:        s.speakBestEffort(ctx, out.Response),
	}

	s.record(ctx, entity.CommandSourceVoice, command, string(out.Kind), out.Rule, out.Response, resp.AudioURL)
	return resp, nil
}

func (s *assistantService) Speak(ctx context.Context, text string) (*assistant.SpeakResponse, error) {
	if s.synthesizer == nil || s.audioStore == nil {
		return nil, assistant.ErrSpeechNotConfigured
	}

	url, err := s.speak(ctx, text)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Speech synthesis failed")
		return nil, assistant.ErrSpeechFailed
	}

	return &assistant.SpeakResponse{Success: true, Text: text, AudioURL: url}, nil
}

func (s *assistantService) History(ctx context.Context, page, limit int) (*assistant.HistoryResponse, error) {
	if s.repo == nil {
		return nil, assistant.ErrHistoryNotConfigured
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	client, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	logs, total, err := client.Commands.GetCommandLogs(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	commands := make([]assistant.CommandHistory, 0, len(logs))
	for _, l := range logs {
		commands = append(commands, assistant.CommandHistory{
			ID:        l.ID,
			Source:    string(l.Source),
			Command:   l.Utterance,
			Rule:      l.Rule,
			Response:  l.Response,
			AudioURL:  l.AudioURL,
			CreatedAt: l.CreatedAt,
		})
	}

	return &assistant.HistoryResponse{
		Commands:   commands,
		Pagination: response.NewPagination(page, limit, total),
	}, nil
}

func (s *assistantService) AudioFile(ctx context.Context, name string) ([]byte, error) {
	if s.audioStore == nil {
		return nil, assistant.ErrAudioNotFound
	}
	return s.audioStore.Load(ctx, name)
}

func (s *assistantService) speak(ctx context.Context, text string) (string, error) {
	data, err := s.synthesizer.GenerateAudio(ctx, text)
	if err != nil {
		return "", err
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return "", err
	}

	return s.audioStore.Save(ctx, id+".mp3", data)
}

// speakBestEffort returns an audio URL for text, or "" when speech is not
// configured or fails.
func (s *assistantService) speakBestEffort(ctx context.Context, text string) string {
	if s.synthesizer == nil || s.audioStore == nil || text == "" {
		return ""
	}

	url, err := s.speak(ctx, text)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Speech synthesis failed, replying with text only")
		return ""
	}
	return url
}

// record stores the command in the history. Failures are logged only.
func (s *assistantService) record(ctx context.Context, source entity.CommandSource, utterance, kind, rule, reply, audioURL string) {
	if s.repo == nil {
		return
	}
	if rule == "" {
		rule = kind
	}

	now := time.Now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return
	}

	client, err := s.repo.NewClient(false)
	if err == nil {
		err = client.Commands.CreateCommandLog(ctx, entity.CommandLog{
			ID:        id,
			Source:    source,
			Utterance: utterance,
			Rule:      rule,
			Response:  reply,
			AudioURL:  audioURL,
			CreatedAt: now,
		})
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to record command history")
	}
}

func transcriptionFailure(err error) string {
	var timeout interface{ Timeout() bool }
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeout) && timeout.Timeout():
		return "Listening timed out"
	case errors.Is(err, audio.ErrEmptyTranscript):
		return "Sorry, I didn't catch that"
	default:
		return "Error recognizing speech"
	}
}
