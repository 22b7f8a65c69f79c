package feeds

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Settings are the process-level knobs, resolved from the environment with
// fallbacks. A .env file in the working directory is honored when present.
type Settings struct {
	DBPath         string
	OutputDir      string
	ListenAddr     string
	ConfigPath     string
	ScrapeInterval time.Duration
	Workers        int
}

// LoadSettings resolves settings from the environment.
func LoadSettings() *Settings {
	_ = godotenv.Load()

	return &Settings{
		DBPath:         getEnv("NEWS_DB_PATH", "news_data.db"),
		OutputDir:      getEnv("NEWS_OUTPUT_DIR", "downloads"),
		ListenAddr:     getEnv("NEWS_LISTEN_ADDR", ":8000"),
		ConfigPath:     getEnv("NEWS_FEED_CONFIG", ""),
		ScrapeInterval: getDuration("NEWS_SCRAPE_INTERVAL", 4*time.Hour),
		Workers:        10,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
