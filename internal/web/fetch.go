// Package web retrieves external context for prompts: single-page
// content extraction and search-engine results.
package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"askbot/internal/httpx"
)

// maxContentLen caps the extracted body text of a fetched page.
const maxContentLen = 3000

// Content is the plain-text extract of a single web page.
type Content struct {
	Title string
	Text  string
	URL   string
}

// Client scrapes pages and search results over a shared HTTP client.
// The zero value is not usable; construct with NewClient.
type Client struct {
	http *http.Client

	// searchBaseURL is overridable in tests.
	searchBaseURL string
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:          httpClient,
		searchBaseURL: defaultSearchBaseURL,
	}
}

// Fetch retrieves rawURL and returns its title plus the visible body
// text with boilerplate elements removed, truncated to maxContentLen.
func (c *Client) Fetch(ctx context.Context, rawURL string) (Content, error) {
	doc, err := c.getDocument(ctx, rawURL)
	if err != nil {
		return Content{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	// Boilerplate, not content.
	doc.Find("script, style, nav, footer, header, aside").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	text := collapseWhitespace(doc.Find("body").Text())

	return Content{
		Title: title,
		Text:  truncateRunes(text, maxContentLen),
		URL:   rawURL,
	}, nil
}

func (c *Client) getDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", httpx.RandomBrowserUserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
