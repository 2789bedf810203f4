package infoService

import (
	"context"
	"fmt"
	"strconv"

	"talksy/internal/api/info"
	contextPkg "talksy/pkg/context"

	"github.com/sirupsen/logrus"
)

func (s *infoService) Wikipedia(ctx context.Context, query string) (*info.ResultResponse, error) {
	if s.wikipedia == nil {
		return nil, info.ErrWikipediaNotConfigured
	}

	summary, err := s.wikipedia.Summary(ctx, query, summarySentences)
	if err != nil {
		s.warn(ctx, "wikipedia", query, err)
		return nil, err
	}

	return &info.ResultResponse{Success: true, Result: summary}, nil
}

func (s *infoService) YouTube(ctx context.Context, query string) (*info.ResultResponse, error) {
	if s.search == nil {
		return nil, info.ErrSearchNotConfigured
	}

	result, err := s.search.YouTube(ctx, query)
	if err != nil {
		s.warn(ctx, "youtube", query, err)
		return nil, err
	}

	return &info.ResultResponse{Success: true, Result: result}, nil
}

func (s *infoService) Google(ctx context.Context, query string) (*info.ResultResponse, error) {
	if s.search == nil {
		return nil, info.ErrSearchNotConfigured
	}

	result, err := s.search.Search(ctx, query)
	if err != nil {
		s.warn(ctx, "web_search", query, err)
		return nil, err
	}

	return &info.ResultResponse{Success: true, Result: result}, nil
}

func (s *infoService) Weather(ctx context.Context, city string) (*info.WeatherResponse, error) {
	if s.weather == nil {
		return nil, info.ErrWeatherNotConfigured
	}

	report, err := s.weather.Report(ctx, city)
	if err != nil {
		s.warn(ctx, "weather", city, err)
		return nil, err
	}

	name := report.City
	if name == "" {
		name = city
	}

	return &info.WeatherResponse{
		Success:     true,
		City:        name,
		Weather:     report.Description,
		Temperature: report.Temperature,
		FeelsLike:   report.FeelsLike,
		Humidity:    report.Humidity,
		WindSpeed:   report.WindSpeed,
		Message: fmt.Sprintf("The current temperature in %s is %s°C, but it feels like %s°C. The weather is %s.",
			city, formatDegrees(report.Temperature), formatDegrees(report.FeelsLike), report.Description),
	}, nil
}

func (s *infoService) warn(ctx context.Context, op, subject string, err error) {
	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"operation":  op,
		"subject":    subject,
		"error":      err.Error(),
	}).Warn("Lookup failed")
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
