// Package remotecfg fetches the remote feature-flag document: a small JSON
// object of primitive values served over HTTP. Fetching is best-effort; when
// the document is unreachable or malformed the documented defaults apply, so
// callers never have to branch on fetch failure.
package remotecfg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shoaib/notekeeper/internal/logging"
)

// Values holds the fetched (or default) configuration document. Typed
// accessors fall back to the given default on a missing key or a type
// mismatch, mirroring remote-config SDK semantics.
type Values struct {
	raw map[string]any
}

// NewValues wraps a raw document. Used directly only in tests and defaults.
func NewValues(raw map[string]any) Values {
	return Values{raw: raw}
}

// Bool returns the flag under key, or def when absent or not a boolean.
func (v Values) Bool(key string, def bool) bool {
	if b, ok := v.raw[key].(bool); ok {
		return b
	}
	return def
}

// String returns the value under key, or def when absent or not a string.
func (v Values) String(key string, def string) string {
	if s, ok := v.raw[key].(string); ok {
		return s
	}
	return def
}

// Int64 returns the value under key, or def when absent or not numeric.
// JSON numbers decode as float64; fractional values are truncated.
func (v Values) Int64(key string, def int64) int64 {
	if f, ok := v.raw[key].(float64); ok {
		return int64(f)
	}
	return def
}

// Float64 returns the value under key, or def when absent or not numeric.
func (v Values) Float64(key string, def float64) float64 {
	if f, ok := v.raw[key].(float64); ok {
		return f
	}
	return def
}

// Client fetches the feature-flag document.
type Client struct {
	url     string
	timeout time.Duration
	http    *http.Client
	log     logging.Logger
}

// NewClient returns a Client for the document at url. An empty url disables
// fetching entirely; Fetch then always returns empty Values (all defaults).
func NewClient(url string, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		url:     url,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "remotecfg"),
	}
}

// Fetch retrieves and decodes the document. On any failure it logs the cause
// and returns empty Values, so every accessor yields its default.
func (c *Client) Fetch(ctx context.Context) Values {
	if c.url == "" {
		return Values{}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		c.log.Warn(ctx, "invalid remote config URL, using defaults", "error", err)
		return Values{}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "remote config unreachable, using defaults", "error", err)
		return Values{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn(ctx, "remote config fetch rejected, using defaults",
			"status", fmt.Sprintf("%d", resp.StatusCode))
		return Values{}
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.log.Warn(ctx, "malformed remote config document, using defaults", "error", err)
		return Values{}
	}

	c.log.Debug(ctx, "remote config fetched", "keys", len(raw))
	return Values{raw: raw}
}
