package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"talksy/internal/entity"
	jwtPkg "talksy/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestApp(t *testing.T) (*fiber.App, Middleware) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	m := New(log)
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Use(m.NewLoggingMiddleware)
	return app, m
}

func TestRequestID(t *testing.T) {
	app, m := newTestApp(t)
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(m.GetRequestID(c)) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Len(t, string(body), 26)
	assert.Equal(t, string(body), resp.Header.Get(RequestIDKey))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDKey, "caller-id")
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "caller-id", string(body))
}

func TestTokenMiddleware(t *testing.T) {
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")

	app, m := newTestApp(t)
	app.Get("/private", m.NewTokenMiddleware, func(c *fiber.Ctx) error {
		op, err := jwtPkg.GetOperatorLoginData(c)
		if err != nil {
			return err
		}
		return c.SendString(op.Username)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token, _, err := jwtPkg.SignOperator(entity.OperatorLoginData{ID: "1", Username: "console"}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "console", string(body))
}

func TestRateLimiter(t *testing.T) {
	app, m := newTestApp(t)
	m.(*middleware).rateLimitter = newRateLimiter(1, 2)
	app.Get("/", m.NewRateLimiter, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{fiber.StatusNoContent, fiber.StatusNoContent, fiber.StatusTooManyRequests}, codes)
}

func TestRequestID_RejectsUnsafeCallerIDs(t *testing.T) {
	app, m := newTestApp(t)
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(m.GetRequestID(c)) })

	for _, id := range []string{"line\tbreak", "<script>", strings.Repeat("a", 65)} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDKey, id)
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.NotEqual(t, id, string(body))
		assert.Len(t, string(body), 26)
	}

	assert.True(t, validRequestID("req-01.abc_XYZ"))
}

func TestRateLimiter_EvictsIdleVisitors(t *testing.T) {
	clock := time.Date(2024, 3, 9, 14, 0, 0, 0, time.UTC)
	r := newRateLimiter(1, 1)
	r.now = func() time.Time { return clock }

	first := r.GetLimiterFrom("10.0.0.1")
	r.GetLimiterFrom("10.0.0.2")
	assert.Equal(t, 2, r.size())
	assert.Same(t, first, r.GetLimiterFrom("10.0.0.1"))

	clock = clock.Add(visitorIdleTTL / 2)
	r.GetLimiterFrom("10.0.0.1")

	clock = clock.Add(visitorIdleTTL/2 + time.Second)
	r.GetLimiterFrom("10.0.0.3")
	assert.Equal(t, 2, r.size())

	clock = clock.Add(2 * visitorIdleTTL)
	r.GetLimiterFrom("10.0.0.4")
	assert.Equal(t, 1, r.size())
}

func TestNew_RateLimitFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("RATE_LIMIT_BURST", "nope")

	log := logrus.New()
	log.SetOutput(io.Discard)
	rl := New(log).(*middleware).rateLimitter
	assert.Equal(t, rate.Limit(5), rl.rate)
	assert.Equal(t, defaultBurst, rl.burstSize)
}

func TestSanitizeRequestBody(t *testing.T) {
	assert.Equal(t, `{"command":"hi","token":"[SECRET]"}`, sanitizeRequestBody("/api/v1/assistant/process-text", []byte(`{"command":"hi","token":"abc"}`)))
	assert.Equal(t, `{"message":"[SECRET]","number":"62812"}`, sanitizeRequestBody("/api/v1/messaging/whatsapp", []byte(`{"number":"62812","message":"hi"}`)))
	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody("/", []byte("plain")))
}
