// Package httpclient is the small JSON-over-HTTP client the provider packages
// share.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const DefaultTimeout = 10 * time.Second

const userAgent = "talksy/1.0 (+https://github.com/talksy)"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected upstream status: %s", e.Status)
}

type Client struct {
	http *http.Client
}

func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// TimeoutFromEnv reads HTTP_CLIENT_TIMEOUT as a Go duration ("10s", "1m").
func TimeoutFromEnv() time.Duration {
	d, err := time.ParseDuration(os.Getenv("HTTP_CLIENT_TIMEOUT"))
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// GetJSON issues a GET to base?query and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, base string, query url.Values, headers map[string]string, out interface{}) error {
	body, err := c.Get(ctx, base, query, headers)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Get issues a GET and returns the body of a 2xx response. The caller closes it.
func (c *Client) Get(ctx context.Context, base string, query url.Values, headers map[string]string) (io.ReadCloser, error) {
	target := base
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return resp.Body, nil
}
