package joke

import (
	"context"
	"strings"

	"talksy/pkg/failure"
	"talksy/pkg/httpclient"
)

const defaultBaseURL = "https://icanhazdadjoke.com/"

type IJoke interface {
	Joke(ctx context.Context) (string, error)
}

type client struct {
	baseURL string
	http    *httpclient.Client
}

func New(http *httpclient.Client) IJoke {
	return &client{baseURL: defaultBaseURL, http: http}
}

func NewWithBaseURL(http *httpclient.Client, baseURL string) IJoke {
	return &client{baseURL: baseURL, http: http}
}

func (c *client) Joke(ctx context.Context) (string, error) {
	var data struct {
		Joke string `json:"joke"`
	}
	if err := c.http.GetJSON(ctx, c.baseURL, nil, map[string]string{"Accept": "application/json"}, &data); err != nil {
		return "", httpclient.Failure("joke", "", err)
	}

	joke := strings.TrimSpace(data.Joke)
	if joke == "" {
		return "", failure.New(failure.NotFound, "joke", nil)
	}
	return joke, nil
}
