package scrape

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Vinodk-17/NewsExplorer/pkg/article"
)

// fixed classifiers keep fetcher tests independent of model output.
type fixedDetector struct{ code string }

func (d fixedDetector) Detect(string) string { return d.code }

type fixedScorer struct{ label string }

func (s fixedScorer) Score(string) string { return s.label }

func testFetcher() *Fetcher {
	log := logrus.New()
	log.SetOutput(io.Discard)
	f := NewFetcher(fixedDetector{code: "en"}, fixedScorer{label: article.SentimentNeutral}, log)
	f.retryInterval = time.Millisecond
	return f
}

func rssDoc(items ...string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Test Feed</title>%s</channel></rss>`, strings.Join(items, ""))
}

func rssItem(title, pubDate, link, desc string) string {
	var b strings.Builder
	b.WriteString("<item>")
	if title != "" {
		fmt.Fprintf(&b, "<title>%s</title>", title)
	}
	if pubDate != "" {
		fmt.Fprintf(&b, "<pubDate>%s</pubDate>", pubDate)
	}
	if link != "" {
		fmt.Fprintf(&b, "<link>%s</link>", link)
	}
	if desc != "" {
		fmt.Fprintf(&b, "<description>%s</description>", desc)
	}
	b.WriteString("</item>")
	return b.String()
}

func serveDoc(t *testing.T, doc string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, doc)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchFeedRecencyWindow(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := rssDoc(
		rssItem("too old", now.Add(-366*24*time.Hour).Format(time.RFC1123Z), "https://example.com/old", "old news"),
		rssItem("on the boundary", now.Add(-365*24*time.Hour).Format(time.RFC1123Z), "https://example.com/boundary", "boundary news"),
		rssItem("fresh", now.Add(-time.Hour).Format(time.RFC1123Z), "https://example.com/fresh", "fresh news"),
	)
	srv := serveDoc(t, doc)

	f := testFetcher()
	f.now = func() time.Time { return now }

	got := f.FetchFeed("Testland", "Test Wire", srv.URL)
	if len(got) != 2 {
		t.Fatalf("expected 2 articles, got %d: %+v", len(got), got)
	}
	if got[0].Title != "on the boundary" || got[1].Title != "fresh" {
		t.Fatalf("unexpected titles/order: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestFetchFeedFallbacks(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := rssDoc(
		rssItem("", "", "https://example.com/untitled", ""),
		rssItem("dated oddly", "yesterday at noon", "https://example.com/odd", "text"),
	)
	srv := serveDoc(t, doc)

	f := testFetcher()
	f.now = func() time.Time { return now }

	got := f.FetchFeed("Testland", "Test Wire", srv.URL)
	if len(got) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(got))
	}
	if got[0].Title != article.NoTitle {
		t.Errorf("missing title should fall back to %q, got %q", article.NoTitle, got[0].Title)
	}
	if !got[0].PublicationDate.Equal(now) {
		t.Errorf("missing date should fall back to now, got %v", got[0].PublicationDate)
	}
	if !got[1].PublicationDate.Equal(now) {
		t.Errorf("unparseable date should fall back to now, got %v", got[1].PublicationDate)
	}
	if got[0].Language == "" {
		t.Errorf("language must never be empty")
	}
	if got[0].Source != "Test Wire" || got[0].Country != "Testland" {
		t.Errorf("labels not applied: %+v", got[0])
	}
}

func TestFetchFeedRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	now := time.Now()
	doc := rssDoc(rssItem("recovered", now.Format(time.RFC1123Z), "https://example.com/x", "d"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, doc)
	}))
	defer srv.Close()

	f := testFetcher()
	got := f.FetchFeed("Testland", "Test Wire", srv.URL)
	if len(got) != 1 {
		t.Fatalf("expected recovery after transient errors, got %d articles", len(got))
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestFetchFeedExhaustionReturnsEmpty(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := testFetcher()
	if got := f.FetchFeed("Testland", "Test Wire", srv.URL); got != nil {
		t.Fatalf("expected nil on exhaustion, got %d articles", len(got))
	}
	// 1 initial attempt + 3 retries.
	if calls.Load() != 4 {
		t.Fatalf("expected 4 attempts, got %d", calls.Load())
	}
}

func TestFetchFeedNonTransientStatusDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := testFetcher()
	if got := f.FetchFeed("Testland", "Test Wire", srv.URL); got != nil {
		t.Fatalf("expected nil on 404, got %d articles", len(got))
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt for 404, got %d", calls.Load())
	}
}

func TestFetchFeedEmptyFeed(t *testing.T) {
	srv := serveDoc(t, rssDoc())
	f := testFetcher()
	if got := f.FetchFeed("Testland", "Test Wire", srv.URL); got != nil {
		t.Fatalf("expected nil for empty feed, got %d articles", len(got))
	}
}

func TestFetchFeedSendsUserAgent(t *testing.T) {
	var ua string
	now := time.Now()
	doc := rssDoc(rssItem("x", now.Format(time.RFC1123Z), "https://example.com/x", "d"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		fmt.Fprint(w, doc)
	}))
	defer srv.Close()

	f := testFetcher()
	f.FetchFeed("Testland", "Test Wire", srv.URL)
	if ua != "Mozilla/5.0" {
		t.Fatalf("unexpected user agent %q", ua)
	}
}
