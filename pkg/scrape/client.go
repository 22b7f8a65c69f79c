// Package scrape retrieves and parses external feeds and pages into Article
// records. Network failures degrade to empty results; they never reach the
// orchestrator as errors.
package scrape

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	userAgent      = "Mozilla/5.0"
	requestTimeout = 10 * time.Second
	maxRetries     = 3
	// Body size cap to protect against untrusted URLs.
	maxBodySize = 10 * 1024 * 1024
)

// transientStatus reports whether an HTTP status is worth retrying.
func transientStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// newClient builds the shared HTTP client. Its transport pools connections
// and is safe for concurrent use across fetch workers.
func newClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// get fetches a URL with a browser-like User-Agent, retrying transient
// failures with exponential backoff. Non-transient HTTP errors fail
// immediately.
func (f *Fetcher) get(url string) ([]byte, error) {
	var body []byte
	op := func() error {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			// Connection errors and timeouts are retried like transient statuses.
			return err
		}
		defer resp.Body.Close()

		if transientStatus(resp.StatusCode) {
			return fmt.Errorf("transient status %d for %s", resp.StatusCode, url)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("status %d for %s", resp.StatusCode, url))
		}

		b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		body = b
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	if f.retryInterval > 0 {
		bo.InitialInterval = f.retryInterval
	}
	if err := backoff.Retry(op, backoff.WithMaxRetries(bo, maxRetries)); err != nil {
		return nil, err
	}
	return body, nil
}
