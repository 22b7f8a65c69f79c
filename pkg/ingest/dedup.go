package ingest

import (
	"github.com/sirupsen/logrus"

	"github.com/Vinodk-17/NewsExplorer/pkg/article"
)

// Dedup removes articles that collide on the identity key within a batch,
// keeping the first occurrence per key. Surviving entries keep their
// relative order.
func Dedup(batch []article.Article, log *logrus.Logger) []article.Article {
	seen := make(map[string]struct{}, len(batch))
	out := make([]article.Article, 0, len(batch))
	for _, a := range batch {
		key := a.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	if removed := len(batch) - len(out); removed > 0 && log != nil {
		log.WithField("removed", removed).Info("removed duplicates")
	}
	return out
}
