// Package search answers web and YouTube search requests. Web results are
// scraped from DuckDuckGo's HTML endpoint; when a browser opener is wired the
// matching Google or YouTube results page is opened on the host as well.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"talksy/pkg/failure"
	"talksy/pkg/httpclient"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://html.duckduckgo.com/html/"
	maxResults     = 3
)

// Opener opens a URL in the host browser.
type Opener interface {
	OpenURL(ctx context.Context, rawURL string) error
}

type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type ISearch interface {
	Search(ctx context.Context, query string) (string, error)
	Results(ctx context.Context, term string, limit int) ([]Result, error)
	YouTube(ctx context.Context, query string) (string, error)
}

type Option func(*client)

func WithBaseURL(u string) Option {
	return func(c *client) { c.baseURL = u }
}

// WithOpener opens result pages in the host browser.
func WithOpener(o Opener) Option {
	return func(c *client) { c.opener = o }
}

type client struct {
	baseURL string
	http    *httpclient.Client
	opener  Opener
	log     *logrus.Logger
}

func New(http *httpclient.Client, log *logrus.Logger, opts ...Option) ISearch {
	c := &client{
		baseURL: defaultBaseURL,
		http:    http,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var queryNoise = []string{
	"search google for",
	"search web for",
	"search for",
	"on google",
	"on web",
}

// CleanQuery lowercases a spoken search request and removes its command words.
func CleanQuery(q string) string {
	q = strings.ToLower(q)
	for _, noise := range queryNoise {
		q = strings.ReplaceAll(q, noise, " ")
	}
	return strings.Join(strings.Fields(q), " ")
}

func GoogleURL(term string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(term)
}

func YouTubeURL(term string) string {
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(term)
}

func (c *client) Search(ctx context.Context, query string) (string, error) {
	term := CleanQuery(query)
	if term == "" {
		return "", failure.NewWithSubject(failure.InvalidInput, "web_search", query, errors.New("empty search term"))
	}

	opened := c.open(ctx, GoogleURL(term))

	results, err := c.Results(ctx, term, maxResults)
	if err != nil {
		if opened {
			return fmt.Sprintf("I've searched for '%s' on Google.", term), nil
		}
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here's what I found for '%s':", term)
	for i, r := range results {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, r.Title)
		if r.Snippet != "" {
			sb.WriteString(": " + r.Snippet)
		}
	}
	return sb.String(), nil
}

// Results scrapes the first limit organic results for term.
func (c *client) Results(ctx context.Context, term string, limit int) ([]Result, error) {
	body, err := c.http.Get(ctx, c.baseURL, url.Values{"q": {term}}, map[string]string{"Accept": "text/html"})
	if err != nil {
		return nil, httpclient.Failure("web_search", term, err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, failure.NewWithSubject(failure.Upstream, "web_search", term, err)
	}

	var results []Result
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find("a.result__a").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return true
		}
		href, _ := link.Attr("href")
		results = append(results, Result{
			Title:   title,
			URL:     resolveLink(href),
			Snippet: strings.Join(strings.Fields(s.Find(".result__snippet").First().Text()), " "),
		})
		return limit <= 0 || len(results) < limit
	})

	if len(results) == 0 {
		return nil, failure.NewWithSubject(failure.NotFound, "web_search", term, nil)
	}
	return results, nil
}

func (c *client) YouTube(ctx context.Context, query string) (string, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return "", failure.NewWithSubject(failure.InvalidInput, "youtube", query, errors.New("empty query"))
	}

	link := YouTubeURL(term)
	if c.open(ctx, link) {
		return fmt.Sprintf("Playing %s on YouTube", term), nil
	}
	return fmt.Sprintf("Here are the YouTube results for %s: %s", term, link), nil
}

func (c *client) open(ctx context.Context, link string) bool {
	if c.opener == nil {
		return false
	}
	if err := c.opener.OpenURL(ctx, link); err != nil {
		c.log.WithFields(logrus.Fields{
			"url":   link,
			"error": err.Error(),
		}).Warn("Failed to open browser")
		return false
	}
	return true
}

// resolveLink unwraps DuckDuckGo redirect links ("//duckduckgo.com/l/?uddg=...").
func resolveLink(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" && strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}
