package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/osintbo/rastro/internal/config"
	"github.com/osintbo/rastro/internal/model"
	"github.com/osintbo/rastro/internal/query"
)

// defaultGoogleBaseURL is the production search endpoint.
const defaultGoogleBaseURL = "https://www.google.com"

// Google is the primary search provider. It scrapes Google's HTML result
// page, which needs no credentials but is aggressively rate limited; the
// caller's concurrency limits are what keep this workable.
type Google struct {
	baseURL   string
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// GoogleOption configures a Google provider.
type GoogleOption func(*Google)

// WithGoogleBaseURL overrides the search endpoint. Used by tests to point
// the provider at a local server.
func WithGoogleBaseURL(baseURL string) GoogleOption {
	return func(g *Google) {
		g.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithGoogleUserAgent sets the User-Agent header.
func WithGoogleUserAgent(userAgent string) GoogleOption {
	return func(g *Google) {
		g.userAgent = userAgent
	}
}

// WithGoogleTimeout sets the per-request timeout.
func WithGoogleTimeout(timeout time.Duration) GoogleOption {
	return func(g *Google) {
		g.client = newHTTPClient(timeout)
	}
}

// WithGoogleHTTPClient injects a custom HTTP client.
func WithGoogleHTTPClient(client *http.Client) GoogleOption {
	return func(g *Google) {
		g.client = client
	}
}

// WithGoogleLogger sets a custom logger.
func WithGoogleLogger(logger *slog.Logger) GoogleOption {
	return func(g *Google) {
		g.logger = logger
	}
}

// NewGoogle creates the primary provider with the given options.
func NewGoogle(opts ...GoogleOption) *Google {
	g := &Google{
		baseURL:   defaultGoogleBaseURL,
		client:    newHTTPClient(config.DefaultSearchTimeout),
		userAgent: config.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Name returns the provider name.
func (g *Google) Name() string {
	return "google"
}

// PlanQueries returns the enriched query variants for a subject.
func (g *Google) PlanQueries(subject model.Subject) []string {
	return query.Plan(subject)
}

// Available probes the endpoint once. Used by provider selection at startup.
func (g *Google) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, g.baseURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close() //nolint:errcheck // probe response body is unused
	return resp.StatusCode < http.StatusInternalServerError
}

// Search executes one query against the HTML result page.
func (g *Google) Search(ctx context.Context, searchQuery string, limit int) ([]string, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&num=%s",
		g.baseURL, url.QueryEscape(searchQuery), strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept-Language", "es-BO,es;q=0.9,en;q=0.5")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck // read side already consumed

	if resp.StatusCode != http.StatusOK {
		g.logger.Debug("search request rejected",
			"provider", g.Name(), "status", resp.StatusCode)
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	results := parseGoogleResults(resp.Body, limit)
	g.logger.Debug("search completed",
		"provider", g.Name(), "results", len(results))
	return results, nil
}

// parseGoogleResults extracts result URLs from the HTML response.
// Google wraps organic results as /url?q=<target> redirect anchors; direct
// absolute anchors appear in some layouts as well. Anything pointing back at
// Google itself is navigation, not a result.
func parseGoogleResults(body io.Reader, limit int) []string {
	anchors := extractAnchors(body)
	results := make([]string, 0, limit)
	seen := make(map[string]bool)

	for _, href := range anchors {
		target := ""
		switch {
		case strings.HasPrefix(href, "/url?"):
			if parsed, err := url.Parse(href); err == nil {
				target = parsed.Query().Get("q")
			}
		case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
			target = href
		}

		if target == "" || !strings.HasPrefix(target, "http") {
			continue
		}
		if host := hostnameOf(target); host == "" || strings.Contains(host, "google.") {
			continue
		}
		if seen[target] {
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

// extractAnchors walks an HTML document and collects every href value in
// document order.
func extractAnchors(body io.Reader) []string {
	doc, err := html.Parse(body)
	if err != nil {
		return nil
	}

	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && attr.Val != "" {
					hrefs = append(hrefs, attr.Val)
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return hrefs
}

// hostnameOf returns the lower-cased hostname of a URL, or empty when the
// URL cannot be parsed.
func hostnameOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
