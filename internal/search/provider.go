package search

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/osintbo/rastro/internal/config"
	"github.com/osintbo/rastro/internal/model"
)

// Provider is the search capability: it plans queries for a subject and
// executes them.
//
// PlanQueries lives on the provider rather than in the query package alone
// because the two engines need different strategies: the primary can exploit
// per-field enrichment (ID, organization, region), while the fallback lacks
// that signal and uses one combined query with result-side domain filtering.
type Provider interface {
	// Name identifies the provider in logs and the run report.
	Name() string

	// PlanQueries returns the ordered query variants for a subject.
	PlanQueries(subject model.Subject) []string

	// Search executes one query and returns up to limit result URLs.
	// The returned slice may be shorter than limit for any reason,
	// including transport errors; a non-nil error accompanies whatever
	// partial results were parsed and is informational only.
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// probeTimeout bounds the one-time primary availability probe.
const probeTimeout = 5 * time.Second

// Select chooses the active provider for a run.
//
// For config.ProviderAuto the primary is probed once; if the probe fails the
// fallback is selected for the whole run. This is a static choice made at
// startup, not a per-request failover.
func Select(ctx context.Context, cfg *config.Config, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}

	google := NewGoogle(
		WithGoogleUserAgent(cfg.UserAgent),
		WithGoogleTimeout(cfg.SearchTimeout),
		WithGoogleLogger(logger),
	)
	duckduckgo := NewDuckDuckGo(cfg.Domains,
		WithDuckDuckGoUserAgent(cfg.UserAgent),
		WithDuckDuckGoTimeout(cfg.SearchTimeout),
		WithDuckDuckGoLogger(logger),
	)

	switch cfg.Provider {
	case config.ProviderGoogle:
		return google
	case config.ProviderDuckDuckGo:
		return duckduckgo
	default:
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		if google.Available(probeCtx) {
			logger.Debug("primary search provider available", "provider", google.Name())
			return google
		}
		logger.Warn("primary search provider unavailable, using fallback",
			"fallback", duckduckgo.Name())
		return duckduckgo
	}
}

// newHTTPClient builds the HTTP client shared by both providers.
// Redirects are followed (engines bounce through consent pages), but the
// per-request timeout is firm.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
