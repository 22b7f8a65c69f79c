// Package db is the persistent article store: a single SQLite table keyed by
// the article identity tuple, with insert-or-ignore upsert semantics.
package db

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS news (
	title TEXT,
	publication_date TEXT,
	source TEXT,
	country TEXT,
	summary TEXT,
	url TEXT,
	language TEXT NOT NULL,
	sentiment TEXT,
	UNIQUE(title, publication_date, source, url)
);
CREATE INDEX IF NOT EXISTS idx_news_country ON news(country);
CREATE INDEX IF NOT EXISTS idx_news_language ON news(language)
`

// InitDB runs migrations on the given DB connection using the embedded SQL.
func InitDB(db *sql.DB) error {
	stmts := strings.Split(migrationsSQL, ";")
	for _, s := range stmts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
