package model

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SubjectReport is the terminal artifact for one subject in one run:
// the ranked, capped evidence set plus enough identity to tie it back to the
// seed record.
//
// During collection the report accumulates evidence from two concurrent
// branches (web search and username enumeration) behind a mutex; Finalize
// merges and ranks them. After Finalize the report is read-only.
type SubjectReport struct {
	// Name is the subject's full name from the seed record.
	Name string `json:"name"`

	// NationalID is the subject's national ID, if present in the seed.
	NationalID string `json:"national_id,omitempty"`

	// DateScanned is when this subject's pipeline started.
	DateScanned time.Time `json:"date_scanned"`

	// Evidence is the ranked result set, at most the configured cap.
	// Populated by Finalize. An empty list means nothing discoverable was
	// found; it is never an error.
	Evidence []Evidence `json:"evidence"`

	// PagesFetched counts candidate URLs for which a fetch was attempted.
	PagesFetched int `json:"pages_fetched"`

	// PagesValidated counts pages that passed the name-match gate.
	PagesValidated int `json:"pages_validated"`

	// TimedOut is true when the subject-level time budget expired before
	// all branches finished. Evidence collected up to that point is still
	// ranked and reported.
	TimedOut bool `json:"timed_out,omitempty"`

	// mu guards the branch buffers during concurrent collection.
	// It is the only shared mutable state in a subject's pipeline.
	mu sync.Mutex

	// webEvidence accumulates evidence from the search branch in
	// discovery order.
	webEvidence []Evidence

	// enumEvidence accumulates evidence from the enumeration branch.
	enumEvidence []Evidence
}

// NewSubjectReport creates a report for the given subject.
func NewSubjectReport(subject Subject) *SubjectReport {
	return &SubjectReport{
		Name:        subject.FullName,
		NationalID:  subject.NationalID,
		DateScanned: time.Now(),
	}
}

// AddWebEvidence appends evidence discovered by the search branch.
// Callers pass per-URL batches in discovery order so ranking ties stay
// deterministic even when fetches ran concurrently.
func (r *SubjectReport) AddWebEvidence(items ...Evidence) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.webEvidence = append(r.webEvidence, items...)
}

// AddEnumeratedEvidence appends evidence discovered by username enumeration.
func (r *SubjectReport) AddEnumeratedEvidence(items ...Evidence) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enumEvidence = append(r.enumEvidence, items...)
}

// CollectedCount returns the number of evidence items gathered so far
// across both branches.
func (r *SubjectReport) CollectedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.webEvidence) + len(r.enumEvidence)
}

// Finalize merges both branch buffers (web first, then enumeration), ranks
// the result, and truncates it to maxItems. It must be called exactly once,
// after all collection branches have returned.
func (r *SubjectReport) Finalize(maxItems int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]Evidence, 0, len(r.webEvidence)+len(r.enumEvidence))
	all = append(all, r.webEvidence...)
	all = append(all, r.enumEvidence...)
	r.Evidence = SelectTop(all, maxItems)
}

// RunReport is the output artifact for a whole run: one SubjectReport per
// seed subject, in seed order, plus run metadata.
type RunReport struct {
	// RunID uniquely identifies this run, for the history database.
	RunID string `json:"run_id"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Provider names the search provider that was active for this run.
	Provider string `json:"provider"`

	// Subjects holds one report per processed subject, in seed order.
	// Subjects skipped for invalid seed data do not appear here.
	Subjects []*SubjectReport `json:"subjects"`
}

// NewRunReport creates an empty run report with a fresh run ID.
func NewRunReport(provider string) *RunReport {
	return &RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Provider:  provider,
		Subjects:  make([]*SubjectReport, 0),
	}
}
