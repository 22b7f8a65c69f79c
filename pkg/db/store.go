package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Vinodk-17/NewsExplorer/pkg/article"
)

// Store wraps the SQLite connection with article-shaped reads and writes.
type Store struct {
	db  *sql.DB
	log *logrus.Logger
}

// NewStore wraps an open, migrated connection.
func NewStore(conn *sql.DB, log *logrus.Logger) *Store {
	return &Store{db: conn, log: log}
}

// WriteBatch upserts a batch row by row. Insertion of an existing identity
// key is a no-op; the stored row is left unchanged. Each row is attempted
// independently: a failing row is logged and its siblings still get written.
// The returned error is the first row-level failure, surfaced so the job can
// report a Failed outcome, after all rows have been attempted.
func (s *Store) WriteBatch(batch []article.Article) (int, error) {
	const q = `INSERT OR IGNORE INTO news
		(title, publication_date, source, country, summary, url, language, sentiment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	inserted := 0
	var firstErr error
	for _, a := range batch {
		res, err := s.db.Exec(q,
			a.Title,
			a.PublicationDate.Format(article.TimeLayout),
			a.Source,
			a.Country,
			a.Summary,
			a.URL,
			a.Language,
			a.Sentiment,
		)
		if err != nil {
			s.log.WithFields(logrus.Fields{"title": a.Title, "url": a.URL}).
				WithError(err).Error("failed to store article")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, firstErr
}

// Filter narrows a query. Each field accepts a comma-separated multi-value
// list; empty fields are ignored. Keyword matches a substring of the title
// or the summary.
type Filter struct {
	Country   string `json:"country"`
	Source    string `json:"source"`
	Language  string `json:"language"`
	Sentiment string `json:"sentiment"`
	Year      string `json:"year"`
	Keyword   string `json:"keyword"`
}

func splitValues(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// All returns every stored article.
func (s *Store) All() ([]article.Record, error) {
	return s.Query(Filter{})
}

// Query returns the articles matching the filter.
func (s *Store) Query(f Filter) ([]article.Record, error) {
	q := `SELECT title, publication_date, source, country, summary, url, language, sentiment
		FROM news WHERE 1=1`
	var params []any

	for _, clause := range []struct {
		column string
		raw    string
	}{
		{"country", f.Country},
		{"source", f.Source},
		{"language", f.Language},
		{"sentiment", f.Sentiment},
	} {
		values := splitValues(clause.raw)
		if len(values) == 0 {
			continue
		}
		q += fmt.Sprintf(" AND %s IN (%s)", clause.column, placeholders(len(values)))
		for _, v := range values {
			params = append(params, v)
		}
	}

	if years := splitValues(f.Year); len(years) > 0 {
		q += fmt.Sprintf(" AND strftime('%%Y', publication_date) IN (%s)", placeholders(len(years)))
		for _, y := range years {
			params = append(params, y)
		}
	}

	if f.Keyword != "" {
		q += " AND (title LIKE ? OR summary LIKE ?)"
		pattern := "%" + f.Keyword + "%"
		params = append(params, pattern, pattern)
	}

	rows, err := s.db.Query(q, params...)
	if err != nil {
		return nil, fmt.Errorf("query news: %w", err)
	}
	defer rows.Close()

	var out []article.Record
	for rows.Next() {
		var r article.Record
		if err := rows.Scan(&r.Title, &r.PublicationDate, &r.Source, &r.Country,
			&r.Summary, &r.URL, &r.Language, &r.Sentiment); err != nil {
			return nil, fmt.Errorf("scan news row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Countries returns the distinct country labels present in the store.
func (s *Store) Countries() ([]string, error) {
	return s.distinct(`SELECT DISTINCT country FROM news`)
}

// Sources returns the distinct source names present in the store.
func (s *Store) Sources() ([]string, error) {
	return s.distinct(`SELECT DISTINCT source FROM news`)
}

// Languages returns the distinct language codes present in the store.
func (s *Store) Languages() ([]string, error) {
	return s.distinct(`SELECT DISTINCT language FROM news`)
}

// Sentiments returns the distinct sentiment labels present in the store.
func (s *Store) Sentiments() ([]string, error) {
	return s.distinct(`SELECT DISTINCT sentiment FROM news`)
}

// Years returns the distinct publication years present in the store.
func (s *Store) Years() ([]string, error) {
	return s.distinct(`SELECT DISTINCT strftime('%Y', publication_date) FROM news`)
}

// Count returns the number of stored rows.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM news`).Scan(&n)
	return n, err
}

func (s *Store) distinct(q string) ([]string, error) {
	rows, err := s.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("distinct query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v.Valid {
			out = append(out, v.String)
		}
	}
	return out, rows.Err()
}
