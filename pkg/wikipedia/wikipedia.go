package wikipedia

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"

	"talksy/pkg/failure"
	"talksy/pkg/httpclient"
)

const (
	defaultBaseURL = "https://en.wikipedia.org/api/rest_v1/page/summary"
	op             = "wikipedia"
)

type IWikipedia interface {
	Summary(ctx context.Context, topic string, sentences int) (string, error)
}

type client struct {
	baseURL string
	http    *httpclient.Client
}

func New(http *httpclient.Client) IWikipedia {
	return &client{baseURL: defaultBaseURL, http: http}
}

func NewWithBaseURL(http *httpclient.Client, baseURL string) IWikipedia {
	return &client{baseURL: strings.TrimRight(baseURL, "/"), http: http}
}

type summaryResponse struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Summary returns the first sentences of the article best matching topic.
func (c *client) Summary(ctx context.Context, topic string, sentences int) (string, error) {
	topic = CleanQuery(topic)
	if topic == "" {
		return "", failure.NewWithSubject(failure.InvalidInput, op, topic, errors.New("empty topic"))
	}

	title := url.PathEscape(strings.ReplaceAll(topic, " ", "_"))

	var data summaryResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"/"+title, url.Values{"redirect": {"true"}}, nil, &data); err != nil {
		return "", httpclient.Failure(op, topic, err)
	}

	if data.Type == "disambiguation" || strings.TrimSpace(data.Extract) == "" {
		return "", failure.NewWithSubject(failure.NotFound, op, topic, nil)
	}

	return FirstSentences(data.Extract, sentences), nil
}

var queryNoise = []string{"search for", "on wikipedia", "wikipedia"}

// CleanQuery drops the command words a spoken Wikipedia request carries.
func CleanQuery(q string) string {
	lower := strings.ToLower(q)
	if len(lower) != len(q) {
		q = lower
	}
	for _, noise := range queryNoise {
		for {
			i := strings.Index(lower, noise)
			if i < 0 {
				break
			}
			q = q[:i] + q[i+len(noise):]
			lower = lower[:i] + lower[i+len(noise):]
		}
	}
	return strings.Join(strings.Fields(q), " ")
}

var sentenceEnd = regexp.MustCompile(`[.!?]["')\]]?(\s+|$)`)

// FirstSentences returns at most n sentences of text. n <= 0 keeps all.
func FirstSentences(text string, n int) string {
	text = strings.TrimSpace(text)
	if n <= 0 {
		return text
	}

	ends := sentenceEnd.FindAllStringIndex(text, -1)
	if len(ends) <= n {
		return text
	}
	return strings.TrimSpace(text[:ends[n-1][1]])
}
