package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func resultDiv(title, href, snippet string) string {
	out := `<div class="result"><h2 class="result__title"><a class="result__a" href="` + href + `">` + title + `</a></h2>`
	if snippet != "" {
		out += `<a class="result__snippet">` + snippet + `</a>`
	}
	return out + `</div>`
}

func newSearchClient(t *testing.T, page string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "" {
			t.Errorf("missing q parameter in %q", r.URL.String())
		}
		w.Write([]byte("<html><body>" + page + "</body></html>"))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client())
	c.searchBaseURL = srv.URL + "/html/"
	return c, srv
}

func TestSearch_ParsesResults(t *testing.T) {
	page := resultDiv("First Hit", "https://one.example.com/", "about one") +
		resultDiv("Second Hit", "https://two.example.com/", "")
	c, _ := newSearchClient(t, page)

	results, err := c.Search(context.Background(), "latest AI news")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Title != "First Hit" || results[0].URL != "https://one.example.com/" || results[0].Snippet != "about one" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[1].Snippet != "" {
		t.Errorf("missing snippet should be empty, got %q", results[1].Snippet)
	}
}

func TestSearch_CapsAtThreeResults(t *testing.T) {
	var page string
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		page += resultDiv("Result "+name, "https://"+name+".example.com/", "snippet "+name)
	}
	c, _ := newSearchClient(t, page)

	results, err := c.Search(context.Background(), "many")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != maxSearchResults {
		t.Fatalf("got %d results, want %d", len(results), maxSearchResults)
	}
	if results[2].Title != "Result c" {
		t.Errorf("results out of order: %+v", results)
	}
}

func TestSearch_SkipsResultsWithoutTitleOrLink(t *testing.T) {
	page := resultDiv("", "https://no-title.example.com/", "x") +
		`<div class="result"><span>no link at all</span></div>` +
		resultDiv("Kept", "https://kept.example.com/", "y")
	c, _ := newSearchClient(t, page)

	results, err := c.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Kept" {
		t.Fatalf("expected only the complete result, got %+v", results)
	}
}

func TestSearch_UnrecognizedMarkupIsEmptyNotError(t *testing.T) {
	c, _ := newSearchClient(t, `<div class="totally-different">nothing here</div>`)

	results, err := c.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected zero results, got %+v", results)
	}
}

func TestSearch_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.Client())
	c.searchBaseURL = srv.URL + "/html/"
	if _, err := c.Search(context.Background(), "q"); err == nil {
		t.Fatalf("expected error for 429 response")
	}
}

func TestResolveResultURL(t *testing.T) {
	cases := []struct {
		href string
		want string
	}{
		{"https://example.com/page", "https://example.com/page"},
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fdoc&rut=abc", "https://example.com/doc"},
		{"/l/?uddg=https%3A%2F%2Fexample.org%2F", "https://example.org/"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := resolveResultURL(tc.href); got != tc.want {
			t.Errorf("resolveResultURL(%q) = %q, want %q", tc.href, got, tc.want)
		}
	}
}
