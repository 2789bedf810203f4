// Package weather looks up current conditions from OpenWeatherMap.
package weather

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"talksy/pkg/failure"
	"talksy/pkg/httpclient"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	cacheTTL       = 10 * time.Minute
	op             = "weather"
)

// Cache is the subset of pkg/redis the client needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
}

type Report struct {
	City        string  `json:"city"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}

type IWeather interface {
	Report(ctx context.Context, city string) (Report, error)
	Describe(ctx context.Context, city string) (string, error)
}

type Option func(*client)

func WithBaseURL(u string) Option {
	return func(c *client) { c.baseURL = u }
}

func WithCache(cache Cache) Option {
	return func(c *client) { c.cache = cache }
}

type client struct {
	apiKey  string
	baseURL string
	http    *httpclient.Client
	cache   Cache
	group   singleflight.Group
	log     *logrus.Logger
}

func New(apiKey string, http *httpclient.Client, log *logrus.Logger, opts ...Option) IWeather {
	c := &client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    http,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type owmResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (c *client) Report(ctx context.Context, city string) (Report, error) {
	city = strings.TrimSpace(city)
	if c.apiKey == "" {
		return Report{}, failure.New(failure.NotConfigured, op, nil)
	}
	if city == "" {
		return Report{}, failure.NewWithSubject(failure.InvalidInput, op, city, errors.New("empty city"))
	}

	key := "weather:" + strings.ToLower(city)
	if report, ok := c.cached(ctx, key); ok {
		report.City = city
		return report, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.fetch(ctx, city)
	})
	if err != nil {
		return Report{}, err
	}

	report := v.(Report)
	c.store(ctx, key, report)
	report.City = city
	return report, nil
}

func (c *client) Describe(ctx context.Context, city string) (string, error) {
	r, err := c.Report(ctx, city)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("The weather in %s is %s. The temperature is %s°C with humidity at %d%% and wind speed of %s m/s.",
		r.City, r.Description, formatNumber(r.Temperature), r.Humidity, formatNumber(r.WindSpeed)), nil
}

func (c *client) fetch(ctx context.Context, city string) (Report, error) {
	params := url.Values{
		"q":     {city},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	var data owmResponse
	if err := c.http.GetJSON(ctx, c.baseURL, params, nil, &data); err != nil {
		return Report{}, httpclient.Failure(op, city, err)
	}
	if len(data.Weather) == 0 {
		return Report{}, failure.NewWithSubject(failure.NotFound, op, city, nil)
	}

	return Report{
		Description: data.Weather[0].Description,
		Temperature: data.Main.Temp,
		FeelsLike:   data.Main.FeelsLike,
		Humidity:    data.Main.Humidity,
		WindSpeed:   data.Wind.Speed,
	}, nil
}

func (c *client) cached(ctx context.Context, key string) (Report, bool) {
	if c.cache == nil {
		return Report{}, false
	}
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		return Report{}, false
	}
	var r Report
	if err := jsoniter.UnmarshalFromString(raw, &r); err != nil {
		return Report{}, false
	}
	return r, true
}

func (c *client) store(ctx context.Context, key string, r Report) {
	if c.cache == nil {
		return
	}
	raw, err := jsoniter.MarshalToString(r)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, raw, cacheTTL); err != nil {
		c.log.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("Failed to cache weather report")
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
