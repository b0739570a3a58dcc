package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config is the fetcher section of the tool configuration.
type Config struct {
	CacheDir        string `mapstructure:"cache_dir" default:"./cache"`
	ThrottleSeconds int    `mapstructure:"throttle_seconds" default:"3"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" default:"10"`
	UserAgent       string `mapstructure:"user_agent" default:"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"`
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response: %s", e.Status)
}

// Client fetches pages with a local disk cache and a minimum interval
// between live requests. Scanned sites are community-run; the throttle is
// not optional.
type Client struct {
	cfg      Config
	http     *http.Client
	log      *zap.Logger
	lastCall time.Time
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:  log,
	}
}

// Get returns the page body, serving from the disk cache when a cached
// copy exists.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	path := c.cachePath(url)
	if data, err := os.ReadFile(path); err == nil {
		c.log.Debug("cache hit", zap.String("url", url))
		return data, nil
	}
	return c.fetch(ctx, url, path)
}

// GetFresh bypasses the cache, fetches live, and refreshes the cached
// copy.
func (c *Client) GetFresh(ctx context.Context, url string) ([]byte, error) {
	return c.fetch(ctx, url, c.cachePath(url))
}

// GetString is Get with a string body, for parsers that want text.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	data, err := c.Get(ctx, url)
	return string(data), err
}

func (c *Client) fetch(ctx context.Context, url, cachePath string) ([]byte, error) {
	c.throttle()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	c.log.Debug("fetching", zap.String("url", url))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w", url, &StatusError{Code: resp.StatusCode, Status: resp.Status})
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err == nil {
		if err := os.WriteFile(cachePath, data, 0o644); err != nil {
			c.log.Warn("cache write failed", zap.String("path", cachePath), zap.Error(err))
		}
	}
	return data, nil
}

func (c *Client) throttle() {
	min := time.Duration(c.cfg.ThrottleSeconds) * time.Second
	if min <= 0 {
		return
	}
	if wait := min - time.Since(c.lastCall); wait > 0 {
		time.Sleep(wait)
	}
	c.lastCall = time.Now()
}

// cachePath flattens a URL into a single cache file name.
func (c *Client) cachePath(url string) string {
	name := strings.ReplaceAll(url, "://", ".")
	name = strings.ReplaceAll(name, "/", ".")
	return filepath.Join(c.cfg.CacheDir, name+".html")
}
