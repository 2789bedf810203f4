package wolfram

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"talksy/pkg/failure"
	"talksy/pkg/httpclient"
)

const (
	defaultBaseURL = "https://api.wolframalpha.com/v1/result"
	op             = "knowledge"
	maxAnswerBytes = 16 * 1024
)

type IWolfram interface {
	Ask(ctx context.Context, query string) (string, error)
}

type client struct {
	appID   string
	baseURL string
	http    *httpclient.Client
}

func New(appID string, http *httpclient.Client) IWolfram {
	return &client{appID: appID, baseURL: defaultBaseURL, http: http}
}

func NewWithBaseURL(appID, baseURL string, http *httpclient.Client) IWolfram {
	return &client{appID: appID, baseURL: baseURL, http: http}
}

// Ask queries the short answers API. Wolfram|Alpha answers 501 when it has no
// short answer for the input.
func (c *client) Ask(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if c.appID == "" {
		return "", failure.New(failure.NotConfigured, op, nil)
	}
	if query == "" {
		return "", failure.NewWithSubject(failure.InvalidInput, op, query, errors.New("empty query"))
	}

	body, err := c.http.Get(ctx, c.baseURL, url.Values{"appid": {c.appID}, "i": {query}}, nil)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotImplemented {
			return "", failure.NewWithSubject(failure.NotFound, op, query, err)
		}
		return "", httpclient.Failure(op, query, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(io.LimitReader(body, maxAnswerBytes))
	if err != nil {
		return "", failure.NewWithSubject(failure.Unavailable, op, query, err)
	}

	answer := strings.TrimSpace(string(raw))
	if answer == "" {
		return "", failure.NewWithSubject(failure.NotFound, op, query, nil)
	}
	return answer, nil
}
