// Package ingest drives the recurring collection run: fan-out over the
// configured sources, dedup, export and storage.
package ingest

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Vinodk-17/NewsExplorer/pkg/article"
	"github.com/Vinodk-17/NewsExplorer/pkg/feeds"
)

// DefaultWorkers is the fan-out width of the orchestrator's worker pool.
const DefaultWorkers = 10

// FeedFetcher retrieves one syndication feed. Implementations never return an
// error; a failed source yields an empty result.
type FeedFetcher interface {
	FetchFeed(country, agency, feedURL string) []article.Article
}

// PageScraper retrieves one non-syndicated historical page.
type PageScraper interface {
	FetchPage(country, pageURL string) (article.Article, error)
}

// Orchestrator fans the fetcher out over every configured feed source on a
// bounded worker pool, scrapes the historical references, and joins all
// results into one batch.
type Orchestrator struct {
	Fetcher FeedFetcher
	Scraper PageScraper
	Workers int
	Log     *logrus.Logger
}

// Collect runs the full fan-out and returns the aggregated batch. A failure
// in any one source never prevents sibling results from being collected.
// Entries from a single source keep their feed order; the order across
// sources is unspecified.
func (o *Orchestrator) Collect(ctx context.Context, sources []feeds.Source, refs []feeds.HistoricalRef) []article.Article {
	workers := o.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	// Each task owns one private result slot; the batch is assembled only
	// after all workers have joined, so there are no concurrent writers.
	results := make([][]article.Article, len(sources))
	pool := NewWorkerPool(workers, len(sources))
	pool.Start(ctx)
	for i, src := range sources {
		i, src := i, src
		if err := pool.Submit(func(ctx context.Context) {
			results[i] = o.Fetcher.FetchFeed(src.Country, src.Agency, src.URL)
		}); err != nil {
			o.Log.WithError(err).Error("failed to submit fetch task")
		}
	}

	// Historical pages are scraped on the orchestrating goroutine while the
	// feed workers run.
	var batch []article.Article
	for _, ref := range refs {
		a, err := o.Scraper.FetchPage(ref.Country, ref.URL)
		if err != nil {
			o.Log.WithFields(logrus.Fields{"country": ref.Country, "url": ref.URL}).
				WithError(err).Error("historical scrape failed")
			continue
		}
		batch = append(batch, a)
	}

	pool.Close()

	for _, res := range results {
		batch = append(batch, res...)
	}
	o.Log.WithField("articles", len(batch)).Info("collection complete")
	return batch
}
