package article

import (
	"strings"
	"time"
)

// TimeLayout is the canonical timestamp format used in the store and exports.
const TimeLayout = "2006-01-02 15:04:05"

// NoTitle is the sentinel title for entries that carry no usable title.
const NoTitle = "No Title"

// Sentiment labels produced by the scorer.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentUnknown  = "unknown"
)

// LanguageUnknown is the fallback language code. The Language field of an
// Article is never empty; it holds at least this value.
const LanguageUnknown = "unknown"

// Article is one canonical, enriched news item.
type Article struct {
	Title           string
	PublicationDate time.Time
	Source          string
	Country         string
	Summary         string
	URL             string
	Language        string
	Sentiment       string
}

// Key returns the identity key of the article. Two articles are the same
// entity iff their keys are equal; this drives dedup and the store's
// uniqueness constraint.
func (a Article) Key() string {
	return strings.Join([]string{a.Title, a.PublicationDate.Format(TimeLayout), a.Source, a.URL}, "\x1f")
}

// Record is the flat serialization view of an Article, shared by the CSV and
// JSON exporters and the query API. Timestamps become strings here.
type Record struct {
	Title           string `json:"title"`
	PublicationDate string `json:"publication_date"`
	Source          string `json:"source"`
	Country         string `json:"country"`
	Summary         string `json:"summary"`
	URL             string `json:"url"`
	Language        string `json:"language"`
	Sentiment       string `json:"sentiment"`
}

// NewRecord converts an Article into its flat form.
func NewRecord(a Article) Record {
	return Record{
		Title:           a.Title,
		PublicationDate: a.PublicationDate.Format(TimeLayout),
		Source:          a.Source,
		Country:         a.Country,
		Summary:         a.Summary,
		URL:             a.URL,
		Language:        a.Language,
		Sentiment:       a.Sentiment,
	}
}

// Records converts a batch.
func Records(batch []Article) []Record {
	out := make([]Record, 0, len(batch))
	for _, a := range batch {
		out = append(out, NewRecord(a))
	}
	return out
}

// ParseTime parses a stored timestamp back into a time.Time. Rows written by
// this pipeline always use TimeLayout; RFC3339 is accepted for rows scraped
// from page metadata by earlier versions.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
