package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/osintbo/rastro/internal/config"
	"github.com/osintbo/rastro/internal/model"
	"github.com/osintbo/rastro/internal/query"
)

// defaultDuckDuckGoBaseURL is the JavaScript-free HTML endpoint.
const defaultDuckDuckGoBaseURL = "https://html.duckduckgo.com"

// DuckDuckGo is the fallback search provider.
//
// It cannot exploit the per-field enrichment the primary uses, so it issues
// one combined query per subject and compensates by filtering results to
// the social-domain allow-list: without the enrichment signal, general-web
// hits for a bare name are mostly noise.
type DuckDuckGo struct {
	baseURL   string
	domains   config.Domains
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// DuckDuckGoOption configures a DuckDuckGo provider.
type DuckDuckGoOption func(*DuckDuckGo)

// WithDuckDuckGoBaseURL overrides the search endpoint for tests.
func WithDuckDuckGoBaseURL(baseURL string) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		d.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithDuckDuckGoUserAgent sets the User-Agent header.
func WithDuckDuckGoUserAgent(userAgent string) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		d.userAgent = userAgent
	}
}

// WithDuckDuckGoTimeout sets the per-request timeout.
func WithDuckDuckGoTimeout(timeout time.Duration) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		d.client = newHTTPClient(timeout)
	}
}

// WithDuckDuckGoHTTPClient injects a custom HTTP client.
func WithDuckDuckGoHTTPClient(client *http.Client) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		d.client = client
	}
}

// WithDuckDuckGoLogger sets a custom logger.
func WithDuckDuckGoLogger(logger *slog.Logger) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		d.logger = logger
	}
}

// NewDuckDuckGo creates the fallback provider. The domain lists drive the
// social-domain result filter.
func NewDuckDuckGo(domains config.Domains, opts ...DuckDuckGoOption) *DuckDuckGo {
	d := &DuckDuckGo{
		baseURL:   defaultDuckDuckGoBaseURL,
		domains:   domains,
		client:    newHTTPClient(config.DefaultSearchTimeout),
		userAgent: config.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Name returns the provider name.
func (d *DuckDuckGo) Name() string {
	return "duckduckgo"
}

// PlanQueries returns the single combined query for a subject.
func (d *DuckDuckGo) PlanQueries(subject model.Subject) []string {
	return []string{query.FallbackQuery(subject)}
}

// Search executes one query against the HTML endpoint and keeps only
// results whose hostname matches the social-domain allow-list.
func (d *DuckDuckGo) Search(ctx context.Context, searchQuery string, limit int) ([]string, error) {
	endpoint := fmt.Sprintf("%s/html/?q=%s&kl=xl-es",
		d.baseURL, url.QueryEscape(searchQuery))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck // read side already consumed

	if resp.StatusCode != http.StatusOK {
		d.logger.Debug("search request rejected",
			"provider", d.Name(), "status", resp.StatusCode)
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	results := d.parseResults(resp.Body, limit)
	d.logger.Debug("search completed",
		"provider", d.Name(), "results", len(results))
	return results, nil
}

// parseResults extracts result URLs from the HTML endpoint response.
// Result anchors either link targets directly or bounce through
// //duckduckgo.com/l/?uddg=<encoded-target> redirects.
func (d *DuckDuckGo) parseResults(body io.Reader, limit int) []string {
	anchors := extractAnchors(body)
	results := make([]string, 0, limit)
	seen := make(map[string]bool)

	for _, href := range anchors {
		target := resolveDuckDuckGoAnchor(href)
		if target == "" || !d.isSocial(target) || seen[target] {
			continue
		}
		seen[target] = true
		results = append(results, target)
		if len(results) >= limit {
			break
		}
	}
	return results
}

// resolveDuckDuckGoAnchor unwraps redirect anchors and discards navigation
// links. Returns empty for anything that is not an external result.
func resolveDuckDuckGoAnchor(href string) string {
	if strings.HasPrefix(href, "//duckduckgo.com/l/") || strings.HasPrefix(href, "/l/") {
		parsed, err := url.Parse(href)
		if err != nil {
			return ""
		}
		return parsed.Query().Get("uddg")
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		if host := hostnameOf(href); host != "" && !strings.Contains(host, "duckduckgo.com") {
			return href
		}
	}
	return ""
}

// isSocial reports whether the URL's hostname matches the social allow-list.
func (d *DuckDuckGo) isSocial(rawURL string) bool {
	host := hostnameOf(rawURL)
	if host == "" {
		return false
	}
	for _, social := range d.domains.Social {
		if strings.Contains(host, social) {
			return true
		}
	}
	return false
}
