package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"talksy/pkg/failure"
	"talksy/pkg/httpclient"

	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://newsapi.org/v2/top-headlines"
	country        = "us"
	maxHeadlines   = 5
	cacheTTL       = 15 * time.Minute
	op             = "news"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
}

type INews interface {
	Headlines(ctx context.Context) (string, error)
	Titles(ctx context.Context) ([]string, error)
}

type client struct {
	apiKey  string
	baseURL string
	http    *httpclient.Client
	cache   Cache
	log     *logrus.Logger
}

// New returns a NewsAPI client. cache may be nil.
func New(apiKey string, http *httpclient.Client, cache Cache, log *logrus.Logger) INews {
	return &client{apiKey: apiKey, baseURL: defaultBaseURL, http: http, cache: cache, log: log}
}

func NewWithBaseURL(apiKey, baseURL string, http *httpclient.Client, cache Cache, log *logrus.Logger) INews {
	return &client{apiKey: apiKey, baseURL: baseURL, http: http, cache: cache, log: log}
}

type headlinesResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title string `json:"title"`
	} `json:"articles"`
}

func (c *client) Headlines(ctx context.Context) (string, error) {
	titles, err := c.Titles(ctx)
	if err != nil {
		return "", err
	}

	lines := make([]string, len(titles))
	for i, t := range titles {
		lines[i] = fmt.Sprintf("%d. %s", i+1, t)
	}
	return "Here are the top headlines:\n" + strings.Join(lines, "\n"), nil
}

// Titles returns up to five top headlines.
func (c *client) Titles(ctx context.Context) ([]string, error) {
	if c.apiKey == "" {
		return nil, failure.New(failure.NotConfigured, op, nil)
	}

	key := "news:" + country
	if titles, ok := c.cached(ctx, key); ok {
		return titles, nil
	}

	var data headlinesResponse
	params := url.Values{"country": {country}, "apiKey": {c.apiKey}}
	if err := c.http.GetJSON(ctx, c.baseURL, params, nil, &data); err != nil {
		return nil, httpclient.Failure(op, "", err)
	}
	if data.Status == "error" {
		return nil, failure.New(failure.Upstream, op, fmt.Errorf("newsapi: %s", data.Message))
	}

	var titles []string
	for _, a := range data.Articles {
		if t := strings.TrimSpace(a.Title); t != "" {
			titles = append(titles, t)
		}
		if len(titles) == maxHeadlines {
			break
		}
	}
	if len(titles) == 0 {
		return nil, failure.New(failure.NotFound, op, nil)
	}

	c.store(ctx, key, titles)
	return titles, nil
}

func (c *client) cached(ctx context.Context, key string) ([]string, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}
	return strings.Split(raw, "\n"), true
}

func (c *client) store(ctx context.Context, key string, titles []string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, strings.Join(titles, "\n"), cacheTTL); err != nil {
		c.log.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("Failed to cache headlines")
	}
}
