package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/osintbo/rastro/internal/config"
	"github.com/osintbo/rastro/internal/model"
)

// PageFetcher retrieves pages over HTTP with a shared client.
//
// Design decision: We use a struct with a shared http.Client rather than
// passing the client on each call because:
//  1. Connection pooling works better with a shared client
//  2. Timeout and User-Agent stay consistent across the whole run
//  3. Easier to test with an injected client or base URL
type PageFetcher struct {
	// client is the HTTP client shared across all fetches.
	client *http.Client

	// userAgent is the User-Agent header sent with each request.
	userAgent string

	// maxBodySize limits the response body size to prevent memory
	// exhaustion from hostile or misconfigured hosts.
	maxBodySize int64

	logger *slog.Logger
}

// PageFetcherOption configures a PageFetcher.
type PageFetcherOption func(*PageFetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) PageFetcherOption {
	return func(f *PageFetcher) {
		f.userAgent = userAgent
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) PageFetcherOption {
	return func(f *PageFetcher) {
		f.client.Timeout = timeout
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) PageFetcherOption {
	return func(f *PageFetcher) {
		f.maxBodySize = size
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(client *http.Client) PageFetcherOption {
	return func(f *PageFetcher) {
		f.client = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) PageFetcherOption {
	return func(f *PageFetcher) {
		f.logger = logger
	}
}

// NewPageFetcher creates a fetcher with sensible defaults.
func NewPageFetcher(opts ...PageFetcherOption) *PageFetcher {
	f := &PageFetcher{
		client:      &http.Client{Timeout: config.DefaultFetchTimeout},
		userAgent:   config.DefaultUserAgent,
		maxBodySize: model.MaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// Fetch retrieves one page. Any failure (transport error, timeout, non-2xx
// status) yields a nil page and no error: the caller treats the URL as
// having produced nothing. Redirects are followed by the underlying client.
func (f *PageFetcher) Fetch(ctx context.Context, rawURL string) *model.PageContent {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		f.logger.Debug("invalid fetch URL", "url", rawURL, "error", err)
		return nil
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "es-BO,es;q=0.9,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("fetch failed", "url", rawURL, "error", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck // read side already consumed

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Debug("fetch rejected", "url", rawURL, "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		f.logger.Debug("fetch body read failed", "url", rawURL, "error", err)
		return nil
	}

	return &model.PageContent{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}
