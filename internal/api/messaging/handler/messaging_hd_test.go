package messagingHandler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"talksy/internal/api/messaging"
	"talksy/internal/entity"
	"talksy/internal/middleware"
	jwtPkg "talksy/pkg/jwt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	calls int
}

func (s *stubService) SendEmail(context.Context, messaging.EmailRequest) (*messaging.SendResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &messaging.SendResponse{Success: true, Message: "Email sent successfully"}, nil
}

func (s *stubService) SendWhatsapp(context.Context, messaging.WhatsappRequest) (*messaging.SendResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &messaging.SendResponse{Success: true, Message: "WhatsApp message sent successfully"}, nil
}

func newApp(svc *stubService) *fiber.App {
	log := logrus.New()
	log.SetOutput(io.Discard)

	mw := middleware.New(log)
	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	New(log, validator.New(), mw, svc).Start(app)
	return app
}

func bearer(t *testing.T) string {
	t.Helper()
	token, _, err := jwtPkg.SignOperator(entity.OperatorLoginData{ID: "op-1", Username: "console"}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func send(t *testing.T, app *fiber.App, path, body, auth string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

const emailBody = `{"receiver_address":"jane@example.com","subject":"Hi","message":"Hello"}`

func TestSendEmail(t *testing.T) {
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")
	svc := &stubService{}

	res := send(t, newApp(svc), "/messaging/email", emailBody, bearer(t))
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var out messaging.SendResponse
	require.NoError(t, jsoniter.NewDecoder(res.Body).Decode(&out))
	assert.Equal(t, messaging.SendResponse{Success: true, Message: "Email sent successfully"}, out)
}

func TestSendEmail_RequiresToken(t *testing.T) {
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")
	svc := &stubService{}

	res := send(t, newApp(svc), "/messaging/email", emailBody, "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Zero(t, svc.calls)
}

func TestSendEmail_Validation(t *testing.T) {
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")
	svc := &stubService{}

	res := send(t, newApp(svc), "/messaging/email", `{"receiver_address":"not-an-email","subject":"Hi","message":"x"}`, bearer(t))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Zero(t, svc.calls)
}

func TestSendFailures(t *testing.T) {
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")

	tests := []struct {
		name string
		path string
		body string
		err  error
		code int
		msg  string
	}{
		{"email delivery", "/messaging/email", emailBody, fmt.Errorf("%w: 535", messaging.ErrSendEmail), http.StatusBadGateway, "Failed to send email"},
		{"whatsapp delivery", "/messaging/whatsapp", `{"number":"6281234567890","message":"hi"}`, fmt.Errorf("%w: offline", messaging.ErrSendWhatsapp), http.StatusBadGateway, "Failed to send WhatsApp message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := send(t, newApp(&stubService{err: tt.err}), tt.path, tt.body, bearer(t))
			assert.Equal(t, tt.code, res.StatusCode)

			var out messaging.SendResponse
			require.NoError(t, jsoniter.NewDecoder(res.Body).Decode(&out))
			assert.False(t, out.Success)
			assert.Equal(t, tt.msg, out.Message)
		})
	}

	res := send(t, newApp(&stubService{err: messaging.ErrWhatsappNotConfigured}), "/messaging/whatsapp", `{"number":"6281234567890","message":"hi"}`, bearer(t))
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
}
