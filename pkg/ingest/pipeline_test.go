package ingest

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Vinodk-17/NewsExplorer/pkg/article"
	"github.com/Vinodk-17/NewsExplorer/pkg/db"
	"github.com/Vinodk-17/NewsExplorer/pkg/feeds"
)

func testConfig() *feeds.Config {
	return &feeds.Config{
		Feeds: map[string][]feeds.Entry{
			"UK":  {{Agency: "alpha", URL: "https://feeds.example.com/alpha"}},
			"USA": {{Agency: "beta", URL: "https://feeds.example.com/beta"}},
		},
	}
}

func testStore(t *testing.T) *db.Store {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	conn.SetMaxOpenConns(1)
	if err := db.InitDB(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return db.NewStore(conn, testLogger())
}

func testPipeline(t *testing.T, store BatchWriter) (*Pipeline, *fakeFetcher) {
	t.Helper()
	fetcher := &fakeFetcher{byURL: map[string][]article.Article{
		"https://feeds.example.com/alpha": feedArticles("alpha", 2),
		"https://feeds.example.com/beta":  feedArticles("beta", 2),
	}}
	orch := &Orchestrator{Fetcher: fetcher, Scraper: &fakeScraper{}, Log: testLogger()}
	exp, err := NewExporter(t.TempDir())
	if err != nil {
		t.Fatalf("exporter: %v", err)
	}
	return NewPipeline(testConfig(), orch, store, exp, testLogger()), fetcher
}

func TestPipelineRunCompletes(t *testing.T) {
	store := testStore(t)
	p, _ := testPipeline(t, store)
	if p.State() != StateIdle {
		t.Fatalf("initial state = %v", p.State())
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if p.State() != StateCompleted {
		t.Fatalf("state = %v, want completed", p.State())
	}
	n, err := store.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 stored rows, got %d", n)
	}
}

func TestPipelineRunIdempotentAcrossRuns(t *testing.T) {
	store := testStore(t)
	p, _ := testPipeline(t, store)
	for i := 0; i < 2; i++ {
		if err := p.Run(context.Background()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	n, err := store.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 4 {
		t.Fatalf("overlapping runs duplicated rows: %d", n)
	}
}

func TestPipelineRunStoresUntitledArticle(t *testing.T) {
	store := testStore(t)
	p, fetcher := testPipeline(t, store)
	untitled := article.Article{
		Title:           article.NoTitle,
		PublicationDate: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		Source:          "alpha",
		Country:         "UK",
		Summary:         "entry without a headline",
		URL:             "https://example.com/untitled",
		Language:        "en",
		Sentiment:       article.SentimentNeutral,
	}
	fetcher.byURL["https://feeds.example.com/alpha"] = []article.Article{untitled}

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	recs, err := store.All()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	found := false
	for _, r := range recs {
		if r.URL == untitled.URL {
			found = true
			if r.Title != article.NoTitle {
				t.Fatalf("stored title = %q, want %q", r.Title, article.NoTitle)
			}
		}
	}
	if !found {
		t.Fatalf("untitled article was not stored")
	}
}

type failingWriter struct{}

func (failingWriter) WriteBatch([]article.Article) (int, error) {
	return 0, errors.New("disk full")
}

func TestPipelineRunFailure(t *testing.T) {
	p, _ := testPipeline(t, failingWriter{})
	if err := p.Run(context.Background()); err == nil {
		t.Fatalf("expected error from failing store")
	}
	if p.State() != StateFailed {
		t.Fatalf("state = %v, want failed", p.State())
	}
	// The next run still executes normally; the job is retried on the next tick.
	p2, _ := testPipeline(t, testStore(t))
	if err := p2.Run(context.Background()); err != nil {
		t.Fatalf("follow-up run: %v", err)
	}
}

type blockingWriter struct {
	entered chan struct{}
	release chan struct{}
}

func (w *blockingWriter) WriteBatch([]article.Article) (int, error) {
	close(w.entered)
	<-w.release
	return 0, nil
}

func TestPipelineSingleFlight(t *testing.T) {
	w := &blockingWriter{entered: make(chan struct{}), release: make(chan struct{})}
	p, _ := testPipeline(t, w)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = p.Run(context.Background())
	}()

	<-w.entered
	if err := p.Run(context.Background()); !errors.Is(err, ErrRunInProgress) {
		t.Fatalf("overlapping run: got %v, want ErrRunInProgress", err)
	}
	if _, err := p.RunFeed("https://feeds.example.com/alpha", "", ""); !errors.Is(err, ErrRunInProgress) {
		t.Fatalf("overlapping single-feed run: got %v, want ErrRunInProgress", err)
	}
	close(w.release)
	wg.Wait()
}

func TestRunFeedDefaultsAndReturns(t *testing.T) {
	store := testStore(t)
	p, _ := testPipeline(t, store)
	got, err := p.RunFeed("https://feeds.example.com/alpha", "", "")
	if err != nil {
		t.Fatalf("run feed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(got))
	}
	n, err := store.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 stored rows, got %d", n)
	}
	if p.State() != StateCompleted {
		t.Fatalf("state = %v", p.State())
	}
}
