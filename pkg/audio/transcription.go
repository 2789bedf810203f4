package audio

import (
	"context"
	"errors"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var ErrEmptyTranscript = errors.New("no speech recognized")

type ITranscriber interface {
	Transcribe(ctx context.Context, fileName string, r io.Reader) (string, error)
}

type TranscriptionService struct {
	client   *openai.Client
	language string
}

func NewTranscriptionService(apiKey string) *TranscriptionService {
	return NewTranscriptionServiceWithConfig(openai.DefaultConfig(apiKey))
}

func NewTranscriptionServiceWithConfig(cfg openai.ClientConfig) *TranscriptionService {
	return &TranscriptionService{client: openai.NewClientWithConfig(cfg), language: "en"}
}

func (t *TranscriptionService) Transcribe(ctx context.Context, fileName string, r io.Reader) (string, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: fileName,
		Reader:   r,
		Language: t.language,
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}
