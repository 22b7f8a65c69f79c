// Package feeds holds the static feed configuration: the country-keyed map of
// syndication endpoints and the one-off historical document references. The
// configuration is loaded once at process start and read-only afterwards.
package feeds

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Defaults used when a caller submits an ad hoc feed without labels.
const (
	CountryCustom = "Custom"
	AgencyCustom  = "Custom Feed"
)

// Source is one configured syndication endpoint.
type Source struct {
	Country string
	Agency  string
	URL     string
}

// HistoricalRef is a one-off non-syndicated page scraped on every run.
// It is never removed after first ingestion; the store's upsert keeps
// re-fetches idempotent.
type HistoricalRef struct {
	Country string
	URL     string
}

// Entry is one agency/url pair inside the YAML feed map.
type Entry struct {
	Agency string `yaml:"agency"`
	URL    string `yaml:"url"`
}

// Config is the full ingestion configuration.
type Config struct {
	Feeds      map[string][]Entry  `yaml:"feeds"`
	Historical map[string][]string `yaml:"historical"`
}

// Load reads a YAML configuration file, or returns the compiled-in defaults
// when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return Defaults(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse feed config: %w", err)
	}
	if len(cfg.Feeds) == 0 {
		return nil, fmt.Errorf("feed config %s declares no feeds", path)
	}
	return &cfg, nil
}

// Sources flattens the feed map into a stable slice, ordered by country name
// and then by position within each country's list.
func (c *Config) Sources() []Source {
	countries := make([]string, 0, len(c.Feeds))
	for country := range c.Feeds {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	var out []Source
	for _, country := range countries {
		for _, e := range c.Feeds[country] {
			out = append(out, Source{Country: country, Agency: e.Agency, URL: e.URL})
		}
	}
	return out
}

// HistoricalRefs flattens the historical document map, ordered like Sources.
func (c *Config) HistoricalRefs() []HistoricalRef {
	countries := make([]string, 0, len(c.Historical))
	for country := range c.Historical {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	var out []HistoricalRef
	for _, country := range countries {
		for _, u := range c.Historical[country] {
			out = append(out, HistoricalRef{Country: country, URL: u})
		}
	}
	return out
}
