package web

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// defaultSearchBaseURL is DuckDuckGo's plain-HTML results endpoint.
	// The markup is far steadier than mainline result pages, but this
	// is still scraping: selector drift degrades to zero results.
	defaultSearchBaseURL = "https://html.duckduckgo.com/html/"

	// maxSearchResults caps how many results a search returns.
	maxSearchResults = 3
)

// Result is a single search hit. Snippet is best-effort and may be empty.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Search queries the search provider and returns at most
// maxSearchResults results with non-empty title and URL. Zero results,
// including unrecognized markup, is a normal outcome, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	searchURL := c.searchBaseURL + "?q=" + url.QueryEscape(query)

	doc, err := c.getDocument(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]Result, 0, maxSearchResults)
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find("a.result__a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		target := resolveResultURL(href)
		if title == "" || target == "" {
			return true
		}

		results = append(results, Result{
			Title:   title,
			URL:     target,
			Snippet: strings.TrimSpace(s.Find(".result__snippet").First().Text()),
		})
		return len(results) < maxSearchResults
	})

	return results, nil
}

// resolveResultURL unwraps DuckDuckGo redirect links (/l/?uddg=<target>)
// to the destination URL and normalizes protocol-relative hrefs.
func resolveResultURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if strings.HasPrefix(u.Path, "/l/") {
		if target := strings.TrimSpace(u.Query().Get("uddg")); target != "" {
			return target
		}
	}
	return href
}
