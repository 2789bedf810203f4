package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"talksy/pkg/failure"
	"talksy/pkg/httpclient"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	op             = "movie"
)

type Movie struct {
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
}

type ITMDB interface {
	Search(ctx context.Context, title string) (Movie, error)
	MovieInfo(ctx context.Context, title string) (string, error)
}

type client struct {
	apiKey  string
	baseURL string
	http    *httpclient.Client
}

func New(apiKey string, http *httpclient.Client) ITMDB {
	return &client{apiKey: apiKey, baseURL: defaultBaseURL, http: http}
}

func NewWithBaseURL(apiKey, baseURL string, http *httpclient.Client) ITMDB {
	return &client{apiKey: apiKey, baseURL: strings.TrimRight(baseURL, "/"), http: http}
}

// Search returns the most relevant match for title.
func (c *client) Search(ctx context.Context, title string) (Movie, error) {
	title = strings.TrimSpace(title)
	if c.apiKey == "" {
		return Movie{}, failure.New(failure.NotConfigured, op, nil)
	}
	if title == "" {
		return Movie{}, failure.NewWithSubject(failure.InvalidInput, op, title, errors.New("empty title"))
	}

	var data struct {
		Results []Movie `json:"results"`
	}
	params := url.Values{"api_key": {c.apiKey}, "query": {title}}
	if err := c.http.GetJSON(ctx, c.baseURL+"/search/movie", params, nil, &data); err != nil {
		return Movie{}, httpclient.Failure(op, title, err)
	}
	if len(data.Results) == 0 {
		return Movie{}, failure.NewWithSubject(failure.NotFound, op, title, nil)
	}
	return data.Results[0], nil
}

func (c *client) MovieInfo(ctx context.Context, title string) (string, error) {
	m, err := c.Search(ctx, title)
	if err != nil {
		return "", err
	}
	return Format(m), nil
}

func Format(m Movie) string {
	return fmt.Sprintf("Title: %s\nRelease Date: %s\nRating: %s/10\nOverview: %s",
		orUnknown(m.Title),
		orUnknown(m.ReleaseDate),
		strconv.FormatFloat(m.VoteAverage, 'f', -1, 64),
		orDefault(m.Overview, "No overview available"))
}

func orUnknown(s string) string {
	return orDefault(s, "Unknown")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
