// Package enrich computes derived article fields: language and sentiment.
// The concrete classifiers sit behind narrow interfaces so the pipeline can
// be tested deterministically with fakes.
package enrich

// LanguageDetector classifies a text span into an ISO-like language code,
// or "unknown" when the span is too short or classification fails.
type LanguageDetector interface {
	Detect(text string) string
}

// SentimentScorer classifies a text span into a polarity label:
// positive, negative, neutral or unknown.
type SentimentScorer interface {
	Score(text string) string
}
