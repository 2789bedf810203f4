package info

import "talksy/pkg/response"

var (
	ErrWikipediaNotConfigured = response.NewError(503, "wikipedia is not configured")
	ErrSearchNotConfigured    = response.NewError(503, "web search is not configured")
	ErrWeatherNotConfigured   = response.NewError(503, "weather is not configured")
)
