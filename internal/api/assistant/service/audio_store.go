package assistantService

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"

	"talksy/internal/api/assistant"
	"talksy/pkg/s3"
)

// AudioStore keeps synthesized speech and returns a URL the caller can fetch.
type AudioStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Load(ctx context.Context, name string) ([]byte, error)
}

var audioNamePattern = regexp.MustCompile(`^[0-9A-Z]{26}\.mp3$`)

type s3AudioStore struct {
	client s3.ItfS3
}

func NewS3AudioStore(client s3.ItfS3) AudioStore {
	return &s3AudioStore{client: client}
}

func (s *s3AudioStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	location, err := s.client.UploadBytes(ctx, name, "audio/mpeg", data)
	if err != nil {
		return "", err
	}
	return s.client.PresignUrl(location)
}

func (s *s3AudioStore) Load(context.Context, string) ([]byte, error) {
	// Objects are served by S3 through presigned URLs.
	return nil, assistant.ErrAudioNotFound
}

type localAudioStore struct {
	dir     string
	urlBase string
}

// NewLocalAudioStore writes audio under dir and serves it from urlBase.
func NewLocalAudioStore(dir, urlBase string) AudioStore {
	return &localAudioStore{dir: dir, urlBase: urlBase}
}

func (s *localAudioStore) Save(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return s.urlBase + name, nil
}

func (s *localAudioStore) Load(_ context.Context, name string) ([]byte, error) {
	if !audioNamePattern.MatchString(name) {
		return nil, assistant.ErrAudioNotFound
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, assistant.ErrAudioNotFound
	}
	return data, err
}
