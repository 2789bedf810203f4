package infoHandler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"talksy/internal/api/info"
	"talksy/internal/middleware"
	"talksy/pkg/failure"
	"talksy/pkg/handlerUtil"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err     error
	queries []string
}

func (s *stubService) result(query string) (*info.ResultResponse, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return &info.ResultResponse{Success: true, Result: "result for " + query}, nil
}

func (s *stubService) Wikipedia(_ context.Context, q string) (*info.ResultResponse, error) {
	return s.result("wikipedia:" + q)
}

func (s *stubService) YouTube(_ context.Context, q string) (*info.ResultResponse, error) {
	return s.result("youtube:" + q)
}

func (s *stubService) Google(_ context.Context, q string) (*info.ResultResponse, error) {
	return s.result("google:" + q)
}

func (s *stubService) Weather(_ context.Context, city string) (*info.WeatherResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &info.WeatherResponse{Success: true, City: city, Weather: "clear sky", Temperature: 20}, nil
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

func post(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

func TestQueries(t *testing.T) {
	svc := &stubService{}
	app := newApp(svc)

	for _, name := range []string{"wikipedia", "youtube", "google"} {
		res := post(t, app, "/info/"+name, `{"query":"golang"}`)
		assert.Equal(t, http.StatusOK, res.StatusCode, name)

		var out info.ResultResponse
		require.NoError(t, jsoniter.NewDecoder(res.Body).Decode(&out))
		assert.Equal(t, "result for "+name+":golang", out.Result)
	}
}

func TestQueries_Validation(t *testing.T) {
	svc := &stubService{}
	res := post(t, newApp(svc), "/info/wikipedia", `{"query":""}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Empty(t, svc.queries)
}

func TestQueries_FailureText(t *testing.T) {
	svc := &stubService{err: failure.NewWithSubject(failure.NotFound, "wikipedia", "xyzzy", nil)}
	res := post(t, newApp(svc), "/info/wikipedia", `{"query":"xyzzy"}`)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var out handlerUtil.ErrorResponse
	require.NoError(t, jsoniter.NewDecoder(res.Body).Decode(&out))
	assert.Equal(t, string(failure.NotFound), out.Code)
	assert.NotEmpty(t, out.Error)
}

func TestWeather(t *testing.T) {
	res := post(t, newApp(&stubService{}), "/info/weather", `{"city":"Paris"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var out info.WeatherResponse
	require.NoError(t, jsoniter.NewDecoder(res.Body).Decode(&out))
	assert.Equal(t, "Paris", out.City)
	assert.Equal(t, "clear sky", out.Weather)

	res = post(t, newApp(&stubService{err: info.ErrWeatherNotConfigured}), "/info/weather", `{"city":"Paris"}`)
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)

	res = post(t, newApp(&stubService{}), "/info/weather", `{}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
