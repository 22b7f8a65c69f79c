package scrape

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/Vinodk-17/NewsExplorer/pkg/article"
)

// summaryParagraphs is how many leading paragraphs form the page summary.
const summaryParagraphs = 3

// FetchPage scrapes one non-syndicated page into an Article. Title comes from
// the first title element, the summary from the first three paragraphs (with
// a readability-extracted excerpt as fallback), the timestamp and source name
// from structured metadata. A failure is returned to the caller, which logs
// it and moves on to sibling URLs.
func (f *Fetcher) FetchPage(country, pageURL string) (article.Article, error) {
	body, err := f.get(pageURL)
	if err != nil {
		return article.Article{}, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return article.Article{}, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	title := article.CleanText(doc.Find("title").First().Text())
	if title == "" {
		title = article.NoTitle
	}

	var parts []string
	doc.Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		parts = append(parts, s.Text())
		return i < summaryParagraphs-1
	})
	summary := article.CleanText(strings.Join(parts, " "))

	pub := f.now()
	if content, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok && content != "" {
		if t, err := time.Parse(time.RFC3339, content); err == nil {
			pub = t
		}
	}

	source, _ := doc.Find(`meta[property="og:site_name"]`).Attr("content")
	source = article.CleanText(source)

	// Readability fills the gaps structured markup leaves open.
	if summary == "" || source == "" {
		if parsed, perr := url.Parse(pageURL); perr == nil {
			if extracted, rerr := readability.FromReader(bytes.NewReader(body), parsed); rerr == nil {
				if summary == "" {
					summary = article.CleanText(extracted.Excerpt)
				}
				if source == "" {
					source = article.CleanText(extracted.SiteName)
				}
			}
		}
	}
	if source == "" {
		source = "Unknown"
	}

	a := article.Article{
		Title:           title,
		PublicationDate: pub,
		Source:          source,
		Country:         country,
		Summary:         summary,
		URL:             pageURL,
		Language:        f.detector.Detect(title + " " + summary),
		Sentiment:       f.scorer.Score(summary),
	}
	return a, nil
}
