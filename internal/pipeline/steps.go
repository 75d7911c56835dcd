package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osintbo/rastro/internal/classify"
	"github.com/osintbo/rastro/internal/config"
	"github.com/osintbo/rastro/internal/enumerate"
	"github.com/osintbo/rastro/internal/extract"
	"github.com/osintbo/rastro/internal/fetch"
	"github.com/osintbo/rastro/internal/model"
	"github.com/osintbo/rastro/internal/query"
	"github.com/osintbo/rastro/internal/search"
	"github.com/osintbo/rastro/internal/validate"
)

// CollectStep gathers evidence for one subject from two concurrent
// branches: web search (plan queries, search, fetch, validate, extract)
// and username enumeration. Neither branch depends on the other, and a
// failure in either leaves the report with whatever the other produced.
type CollectStep struct {
	provider   search.Provider
	fetcher    *fetch.PageFetcher
	classifier *classify.Classifier
	enumerator enumerate.Enumerator

	// resultsPerQuery is the per-query result-count hint for the provider.
	resultsPerQuery int

	// maxInflight bounds simultaneous fetches within one subject so a
	// wide fan-out does not hammer the targets into blocking us.
	maxInflight int

	// subjectTimeout caps the subject's total collection wall-clock time.
	// On expiry collection stops and the step returns normally with the
	// evidence gathered so far.
	subjectTimeout time.Duration

	logger *slog.Logger
}

// CollectStepOption configures a CollectStep.
type CollectStepOption func(*CollectStep)

// WithResultsPerQuery sets the per-query result-count hint.
func WithResultsPerQuery(n int) CollectStepOption {
	return func(s *CollectStep) {
		if n > 0 {
			s.resultsPerQuery = n
		}
	}
}

// WithMaxInflightFetches bounds simultaneous fetches per subject.
func WithMaxInflightFetches(n int) CollectStepOption {
	return func(s *CollectStep) {
		if n > 0 {
			s.maxInflight = n
		}
	}
}

// WithSubjectTimeout sets the per-subject collection budget.
func WithSubjectTimeout(timeout time.Duration) CollectStepOption {
	return func(s *CollectStep) {
		if timeout > 0 {
			s.subjectTimeout = timeout
		}
	}
}

// WithCollectLogger sets a custom logger.
func WithCollectLogger(logger *slog.Logger) CollectStepOption {
	return func(s *CollectStep) {
		s.logger = logger
	}
}

// NewCollectStep wires the collection step from its collaborators.
func NewCollectStep(
	provider search.Provider,
	fetcher *fetch.PageFetcher,
	classifier *classify.Classifier,
	enumerator enumerate.Enumerator,
	opts ...CollectStepOption,
) *CollectStep {
	s := &CollectStep{
		provider:        provider,
		fetcher:         fetcher,
		classifier:      classifier,
		enumerator:      enumerator,
		resultsPerQuery: config.DefaultResultsPerQuery,
		maxInflight:     config.DefaultMaxInflightFetches,
		subjectTimeout:  config.DefaultSubjectTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Name returns the step name.
func (s *CollectStep) Name() string {
	return "collect-evidence"
}

// Do runs both collection branches concurrently under the subject budget.
// Expiry of the budget marks the report timed out but is not an error:
// ranking proceeds over the partial evidence.
func (s *CollectStep) Do(ctx context.Context, scan *SubjectScan) error {
	collectCtx, cancel := context.WithTimeout(ctx, s.subjectTimeout)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		s.collectWeb(collectCtx, scan)
		return nil
	})
	g.Go(func() error {
		s.collectEnumerated(collectCtx, scan)
		return nil
	})
	_ = g.Wait() //nolint:errcheck // branches never return errors

	if errors.Is(collectCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		s.logger.Warn("subject budget expired, ranking partial evidence",
			"subject", scan.Subject.FullName,
			"collected", scan.Report.CollectedCount(),
		)
		scan.Report.TimedOut = true
	}
	return nil
}

// urlResult is the outcome of processing one candidate URL. Results are
// collected per URL index so that evidence lands in the report in discovery
// order no matter how the concurrent fetches interleave.
type urlResult struct {
	evidence  []model.Evidence
	fetched   bool
	validated bool
}

// collectWeb is the search branch: plan queries, fan out to the provider,
// deduplicate candidate URLs keeping first occurrence, then fetch,
// validate, and extract concurrently with a bounded in-flight limit.
func (s *CollectStep) collectWeb(ctx context.Context, scan *SubjectScan) {
	urls := s.searchCandidates(ctx, scan.Subject)
	if len(urls) == 0 {
		return
	}

	results := make([]urlResult, len(urls))

	var g errgroup.Group
	g.SetLimit(s.maxInflight)
	for i, rawURL := range urls {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			results[i] = s.processURL(ctx, scan.Subject, rawURL)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // per-URL failures yield empty results

	for _, result := range results {
		if result.fetched {
			scan.Report.PagesFetched++
		}
		if result.validated {
			scan.Report.PagesValidated++
		}
		scan.Report.AddWebEvidence(result.evidence...)
	}
}

// searchCandidates runs every planned query against the active provider
// and returns the deduplicated candidate URLs in discovery order. Provider
// errors terminate that query's results early, never the branch.
func (s *CollectStep) searchCandidates(ctx context.Context, subject model.Subject) []string {
	seen := make(map[string]bool)
	var urls []string

	for _, queryString := range s.provider.PlanQueries(subject) {
		if ctx.Err() != nil {
			break
		}

		results, err := s.provider.Search(ctx, queryString, s.resultsPerQuery)
		if err != nil {
			s.logger.Debug("search query failed",
				"provider", s.provider.Name(),
				"query", queryString,
				"error", err,
			)
		}
		for _, rawURL := range results {
			if seen[rawURL] {
				continue
			}
			seen[rawURL] = true
			urls = append(urls, rawURL)
		}
	}
	return urls
}

// processURL classifies, fetches, validates, and extracts one candidate.
// The classification is recorded as evidence only when validation passes.
func (s *CollectStep) processURL(ctx context.Context, subject model.Subject, rawURL string) urlResult {
	classification := s.classifier.Classify(rawURL)

	result := urlResult{fetched: true}
	page := s.fetcher.Fetch(ctx, rawURL)
	if page == nil {
		return result
	}

	validate.ParsePage(page)
	if !validate.PageMatches(subject, page) {
		return result
	}
	result.validated = true

	hostname := classify.Hostname(rawURL)
	result.evidence = append(result.evidence, model.Evidence{
		Kind:     model.EvidenceProfile,
		Source:   classification.Kind,
		Hostname: hostname,
		URL:      rawURL,
		Trust:    classification.Trust,
	})

	contactTrust := model.ContactTrust(classification.Kind)
	contacts := extract.Extract(page.Text)
	for _, email := range contacts.Emails {
		if !extract.KeepEmail(subject, email) {
			continue
		}
		result.evidence = append(result.evidence, model.Evidence{
			Kind:     model.EvidenceEmail,
			Source:   classification.Kind,
			Hostname: hostname,
			Datum:    email,
			Trust:    contactTrust,
		})
	}
	for _, phone := range contacts.Phones {
		if !extract.KeepPhone(phone) {
			continue
		}
		result.evidence = append(result.evidence, model.Evidence{
			Kind:     model.EvidencePhone,
			Source:   classification.Kind,
			Hostname: hostname,
			Datum:    phone,
			Trust:    contactTrust,
		})
	}
	return result
}

// collectEnumerated is the enumeration branch: derive username variants
// and classify whatever profile URLs the enumerator reports. Enumerator
// failures already surface as empty slices.
func (s *CollectStep) collectEnumerated(ctx context.Context, scan *SubjectScan) {
	for _, username := range query.UsernameVariants(scan.Subject) {
		if ctx.Err() != nil {
			return
		}

		profileURLs := s.enumerator.Enumerate(ctx, username)
		if len(profileURLs) == 0 {
			continue
		}

		items := make([]model.Evidence, 0, len(profileURLs))
		for _, profileURL := range profileURLs {
			classification := s.classifier.Classify(profileURL)
			items = append(items, model.Evidence{
				Kind:     model.EvidenceSherlockProfile,
				Source:   classification.Kind,
				Hostname: classify.Hostname(profileURL),
				URL:      profileURL,
				Trust:    classification.Trust,
			})
		}
		scan.Report.AddEnumeratedEvidence(items...)
	}
}

// RankStep merges both collection branches, ranks the evidence, and caps
// the result set. It must run after CollectStep.
type RankStep struct {
	// maxEvidence caps the final evidence list.
	maxEvidence int
}

// NewRankStep creates the ranking step. A non-positive cap falls back to
// the default.
func NewRankStep(maxEvidence int) *RankStep {
	if maxEvidence <= 0 {
		maxEvidence = config.DefaultMaxEvidence
	}
	return &RankStep{maxEvidence: maxEvidence}
}

// Name returns the step name.
func (s *RankStep) Name() string {
	return "rank-and-select"
}

// Do finalizes the report.
func (s *RankStep) Do(_ context.Context, scan *SubjectScan) error {
	scan.Report.Finalize(s.maxEvidence)
	return nil
}
