package scrape

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"

	"github.com/Vinodk-17/NewsExplorer/pkg/article"
	"github.com/Vinodk-17/NewsExplorer/pkg/enrich"
)

// recencyWindow is the cutoff beyond which feed entries are dropped.
const recencyWindow = 365 * 24 * time.Hour

// Fetcher retrieves syndication feeds and historical pages and turns their
// entries into enriched Articles. One Fetcher is shared by all workers; its
// HTTP client is safe for concurrent use.
type Fetcher struct {
	client   *http.Client
	detector enrich.LanguageDetector
	scorer   enrich.SentimentScorer
	log      *logrus.Logger

	// now is injectable so the recency window is testable.
	now func() time.Time
	// retryInterval overrides the initial backoff interval in tests.
	retryInterval time.Duration
}

// NewFetcher builds a Fetcher sharing one pooled HTTP client.
func NewFetcher(detector enrich.LanguageDetector, scorer enrich.SentimentScorer, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		client:   newClient(),
		detector: detector,
		scorer:   scorer,
		log:      log,
		now:      time.Now,
	}
}

// FetchFeed retrieves and parses one feed into zero or more Articles. It
// never returns an error: transient failures are retried, exhaustion and
// parse failures are logged and yield an empty result so sibling sources
// keep collecting. Entry order within the feed is preserved.
func (f *Fetcher) FetchFeed(country, agency, feedURL string) []article.Article {
	fields := logrus.Fields{"country": country, "agency": agency, "url": feedURL}

	body, err := f.get(feedURL)
	if err != nil {
		f.log.WithFields(fields).WithError(err).Error("failed to fetch feed")
		return nil
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		f.log.WithFields(fields).WithError(err).Error("failed to parse feed")
		return nil
	}
	if len(feed.Items) == 0 {
		f.log.WithFields(fields).Warn("no entries found")
		return nil
	}

	cutoff := f.now().Add(-recencyWindow)
	entries := make([]article.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		a, err := f.buildEntry(country, agency, item)
		if err != nil {
			f.log.WithFields(fields).WithError(err).Error("skipping entry")
			continue
		}
		// Entries older than the recency window are silently dropped;
		// the boundary itself is included.
		if a.PublicationDate.Before(cutoff) {
			continue
		}
		entries = append(entries, a)
	}

	f.log.WithFields(fields).WithField("articles", len(entries)).Info("fetched feed")
	return entries
}

// buildEntry converts one raw feed item into an Article. Panics inside the
// feed library or classifiers are converted into an error so one bad entry
// never takes down its siblings.
func (f *Fetcher) buildEntry(country, agency string, item *gofeed.Item) (a article.Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("entry panic: %v", r)
		}
	}()

	title := article.CleanText(item.Title)
	if title == "" {
		title = article.NoTitle
	}
	summary := article.CleanText(item.Description)
	if summary == "" {
		summary = article.CleanText(item.Content)
	}

	a = article.Article{
		Title:           title,
		PublicationDate: f.entryTime(item.Published, item.Updated),
		Source:          agency,
		Country:         country,
		Summary:         summary,
		URL:             item.Link,
		Language:        f.detector.Detect(title + " " + summary),
		Sentiment:       f.scorer.Score(summary),
	}
	return a, nil
}

// entryTime extracts the publication timestamp: published, falling back to
// updated, falling back to the current time when absent or unparseable.
func (f *Fetcher) entryTime(published, updated string) time.Time {
	raw := published
	if raw == "" {
		raw = updated
	}
	if raw == "" {
		return f.now()
	}
	t, err := time.Parse(time.RFC1123Z, raw)
	if err != nil {
		return f.now()
	}
	return t
}
