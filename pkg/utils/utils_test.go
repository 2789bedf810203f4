package utils

import (
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULIDFromTimestamp(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	id, err := New().NewULIDFromTimestamp(now)
	require.NoError(t, err)

	parsed, err := ulid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(now), parsed.Time())
}

func TestValidateAudioFile(t *testing.T) {
	header := func(name, contentType string, size int64) *multipart.FileHeader {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", contentType)
		return &multipart.FileHeader{Filename: name, Header: h, Size: size}
	}

	tests := []struct {
		name    string
		file    *multipart.FileHeader
		wantErr string
	}{
		{"audio content type", header("clip.bin", "audio/wav", 100), ""},
		{"audio extension", header("clip.webm", "application/octet-stream", 100), ""},
		{"missing", nil, "no file uploaded"},
		{"empty", header("clip.wav", "audio/wav", 0), "uploaded file is empty"},
		{"too large", header("clip.wav", "audio/wav", 26*1024*1024), "file size exceeds limit"},
		{"not audio", header("photo.png", "image/png", 100), "uploaded file is not an audio file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().ValidateAudioFile(tt.file)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
