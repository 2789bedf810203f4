// Package advice fetches a random piece of advice and the host's public IP.
package advice

import (
	"context"
	"net/url"
	"strings"

	"talksy/pkg/failure"
	"talksy/pkg/httpclient"
)

const (
	defaultAdviceURL = "https://api.adviceslip.com/advice"
	defaultIPURL     = "https://api64.ipify.org"
)

type IAdvice interface {
	Advice(ctx context.Context) (string, error)
	PublicIP(ctx context.Context) (string, error)
}

type client struct {
	adviceURL string
	ipURL     string
	http      *httpclient.Client
}

func New(http *httpclient.Client) IAdvice {
	return &client{adviceURL: defaultAdviceURL, ipURL: defaultIPURL, http: http}
}

func NewWithURLs(http *httpclient.Client, adviceURL, ipURL string) IAdvice {
	return &client{adviceURL: adviceURL, ipURL: ipURL, http: http}
}

func (c *client) Advice(ctx context.Context) (string, error) {
	var data struct {
		Slip struct {
			Advice string `json:"advice"`
		} `json:"slip"`
	}
	if err := c.http.GetJSON(ctx, c.adviceURL, nil, nil, &data); err != nil {
		return "", httpclient.Failure("advice", "", err)
	}

	advice := strings.TrimSpace(data.Slip.Advice)
	if advice == "" {
		return "", failure.New(failure.NotFound, "advice", nil)
	}
	return advice, nil
}

func (c *client) PublicIP(ctx context.Context) (string, error) {
	var data struct {
		IP string `json:"ip"`
	}
	if err := c.http.GetJSON(ctx, c.ipURL, url.Values{"format": {"json"}}, nil, &data); err != nil {
		return "", httpclient.Failure("ip", "", err)
	}
	if data.IP == "" {
		return "", failure.New(failure.NotFound, "ip", nil)
	}
	return data.IP, nil
}
