package config

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talksy/internal/dispatcher"
	"talksy/internal/middleware"
	"talksy/pkg/openai"
	"talksy/pkg/redis"
	"talksy/pkg/wolfram"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGemini struct{}

func (stubGemini) Ask(context.Context, string) (string, error) { return "gemini", nil }
func (stubGemini) Close()                                      {}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(
		WithFiber(NewFiber(quietLogger())),
		WithLogger(quietLogger()),
		WithValidator(NewValidator()),
		WithMiddleware(),
		WithHTTPClient(0),
		WithUtils(),
	)
	require.NoError(t, err)
	return s
}

func TestNewServer_RequiresEngineAndLogger(t *testing.T) {
	_, err := NewServer(WithLogger(quietLogger()))
	assert.Error(t, err)

	_, err = NewServer(WithFiber(NewFiber(quietLogger())))
	assert.Error(t, err)
}

func TestKnowledgeProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		appID    string
		gemini   bool
		want     string
	}{
		{"explicit gemini", "gemini", "app", true, "gemini"},
		{"explicit gemini missing", "gemini", "app", false, ""},
		{"explicit wolfram", "wolfram", "app", true, "wolfram"},
		{"explicit wolfram missing", "wolfram", "", true, ""},
		{"default prefers wolfram", "", "app", true, "wolfram"},
		{"default falls back to gemini", "", "", true, "gemini"},
		{"nothing configured", "", "", false, ""},
		{"explicit openai", "openai", "app", true, "openai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("KNOWLEDGE_PROVIDER", tt.provider)
			t.Setenv("WOLFRAM_ALPHA_ID", tt.appID)
			t.Setenv("OPENAI_API_KEY", "")
			if tt.want == "openai" {
				t.Setenv("OPENAI_API_KEY", "sk-test")
			}

			s := newTestServer(t)
			if tt.gemini {
				s.geminiClient = stubGemini{}
			}

			k := s.knowledge()
			switch tt.want {
			case "":
				assert.Nil(t, k)
			case "gemini":
				assert.Equal(t, stubGemini{}, k)
			case "wolfram":
				assert.IsType(t, wolfram.New("", nil), k)
			case "openai":
				assert.IsType(t, openai.NewChatGPT(""), k)
			}
		})
	}
}

func TestSkills_MissingKeysStayNil(t *testing.T) {
	for _, key := range []string{"OPENWEATHER_APP_ID", "NEWS_API_KEY", "TMDB_API_KEY", "WOLFRAM_ALPHA_ID", "KNOWLEDGE_PROVIDER", "OPENAI_API_KEY"} {
		t.Setenv(key, "")
	}

	set := newTestServer(t).skills(nil)
	assert.Nil(t, set.dispatch.Weather)
	assert.Nil(t, set.dispatch.Headlines)
	assert.Nil(t, set.dispatch.Movies)
	assert.Nil(t, set.dispatch.Knowledge)
	assert.Nil(t, set.dispatch.Reminders)
	assert.Nil(t, set.reminders)
	assert.NotNil(t, set.dispatch.Clock)
	assert.NotNil(t, set.dispatch.Desktop)

	d, err := dispatcher.New(set.dispatch, quietLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, "News API key is not configured.", d.Dispatch(context.Background(), "get news"))
}

func TestRegisterHandler_Routes(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.RegisterHandler())
	s.mountRoutes()

	res, err := s.engine.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, res.Header.Get(middleware.RequestIDKey), 26)

	var body map[string]string
	require.NoError(t, jsoniter.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "Welcome to Talksy API. A virtual assistant that respects your privacy.", body["message"])

	res, err = s.engine.Test(httptest.NewRequest(http.MethodGet, "/api/v1/assistant/history", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get(middleware.RequestIDKey))

	res, err = s.engine.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestRegisterHandler_MetricsBehindMiddleware(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, WithMetrics()(s))
	require.NoError(t, s.RegisterHandler())
	s.mountRoutes()

	res, err := s.engine.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, res.Header.Get(middleware.RequestIDKey), 26)
}

type closingRedis struct {
	closed bool
}

func (r *closingRedis) Get(context.Context, string) (string, error) { return "", redis.ErrCacheMiss }
func (r *closingRedis) Set(context.Context, string, string, time.Duration) error {
	return nil
}
func (r *closingRedis) Delete(context.Context, string) error { return nil }
func (r *closingRedis) Close() error {
	r.closed = true
	return nil
}

func TestShutdown_ClosesRedis(t *testing.T) {
	s := newTestServer(t)
	cache := &closingRedis{}
	s.redisServer = cache

	_ = s.Shutdown(context.Background())
	assert.True(t, cache.closed)
}

func TestFiberErrorHandler(t *testing.T) {
	app := NewFiber(quietLogger())
	app.Get("/boom", func(*fiber.Ctx) error { return errors.New("db password leaked") })

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	var body map[string]string
	require.NoError(t, jsoniter.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "Cannot GET /nope", body["error"])

	res, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	body = map[string]string{}
	require.NoError(t, jsoniter.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "An unexpected error occurred", body["error"])
}

func TestEnvEnabled(t *testing.T) {
	for value, want := range map[string]bool{"true": true, "1": true, "ON": true, "": false, "no": false} {
		t.Setenv("FEATURE_FLAG", value)
		assert.Equal(t, want, envEnabled("FEATURE_FLAG"), value)
	}
}
