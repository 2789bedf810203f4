package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talksy/pkg/failure"
	"talksy/pkg/httpclient"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache map[string]string

func (m mapCache) Get(_ context.Context, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", errors.New("miss")
	}
	return v, nil
}

func (m mapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m[key] = value
	return nil
}

const body = `{"status":"ok","articles":[
	{"title":"One"},{"title":"Two"},{"title":" "},{"title":"Three"},
	{"title":"Four"},{"title":"Five"},{"title":"Six"}
]}`

func TestHeadlines(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "us", r.URL.Query().Get("country"))
		assert.Equal(t, "key", r.URL.Query().Get("apiKey"))
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	cache := mapCache{}
	n := NewWithBaseURL("key", srv.URL, httpclient.New(time.Second), cache, logrus.New())

	want := "Here are the top headlines:\n1. One\n2. Two\n3. Three\n4. Four\n5. Five"
	got, err := n.Headlines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = n.Headlines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, calls)
}

func TestHeadlines_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","articles":[]}`))
	}))
	defer srv.Close()

	_, err := NewWithBaseURL("key", srv.URL, httpclient.New(time.Second), nil, logrus.New()).Headlines(context.Background())
	assert.True(t, failure.Is(err, failure.NotFound))

	_, err = New("", httpclient.New(time.Second), nil, logrus.New()).Headlines(context.Background())
	assert.Equal(t, "News API key is not configured.", failure.Text(err))
}
