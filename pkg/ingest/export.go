package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Vinodk-17/NewsExplorer/pkg/article"
)

// Export file names inside the output directory. Both files are overwritten
// on every run, not appended.
const (
	CSVFileName  = "news_data.csv"
	JSONFileName = "news_data.json"
)

var csvHeader = []string{"title", "publication_date", "source", "country", "summary", "url", "language", "sentiment"}

// Exporter writes the flat serializations of a batch to a fixed output
// location.
type Exporter struct {
	Dir string
}

// NewExporter creates the output directory if needed.
func NewExporter(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Exporter{Dir: dir}, nil
}

// WriteCSV writes the batch as a comma-separated table with a header row.
func (e *Exporter) WriteCSV(batch []article.Article) error {
	path := filepath.Join(e.Dir, CSVFileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, a := range batch {
		r := article.NewRecord(a)
		row := []string{r.Title, r.PublicationDate, r.Source, r.Country, r.Summary, r.URL, r.Language, r.Sentiment}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteJSON writes the batch as a record-array JSON document.
func (e *Exporter) WriteJSON(batch []article.Article) error {
	path := filepath.Join(e.Dir, JSONFileName)
	data, err := json.Marshal(article.Records(batch))
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
