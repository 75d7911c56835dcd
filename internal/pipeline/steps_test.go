package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/osintbo/rastro/internal/classify"
	"github.com/osintbo/rastro/internal/config"
	"github.com/osintbo/rastro/internal/fetch"
	"github.com/osintbo/rastro/internal/model"
)

// fakeProvider returns canned URLs for every query.
type fakeProvider struct {
	queries []string
	urls    []string
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) PlanQueries(_ model.Subject) []string {
	return p.queries
}

func (p *fakeProvider) Search(_ context.Context, _ string, limit int) ([]string, error) {
	if len(p.urls) > limit {
		return p.urls[:limit], nil
	}
	return p.urls, nil
}

// fakeEnumerator returns canned profile URLs for every username.
type fakeEnumerator struct {
	urls  []string
	calls []string
}

func (e *fakeEnumerator) Enumerate(_ context.Context, username string) []string {
	e.calls = append(e.calls, username)
	return e.urls
}

// testDomains treats the loopback host as official so httptest pages rank
// as high-trust sources.
func testDomains() config.Domains {
	domains := config.DefaultDomains()
	domains.OfficialSuffixes = append(domains.OfficialSuffixes, "127.0.0.1")
	return domains
}

// TestCollectAndRank tests the full per-subject flow: one official page
// matching the subject yields profile plus email evidence, both high trust,
// and the enumeration branch contributes nothing.
func TestCollectAndRank(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Ana Paz - Nota</title></head>
<body>Contacto: ana.paz@gmail.com</body></html>`))
	}))
	defer server.Close()

	provider := &fakeProvider{queries: []string{`"Ana Paz" Bolivia`}, urls: []string{server.URL}}
	classifier := classify.New(testDomains())
	collect := NewCollectStep(provider, fetch.NewPageFetcher(), classifier, &fakeEnumerator{})

	p := New()
	p.AddSteps(collect, NewRankStep(config.DefaultMaxEvidence))

	scan := NewSubjectScan(model.Subject{FullName: "Ana Paz", NationalID: "123"})
	if err := p.Execute(context.Background(), scan); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	report := scan.Report
	if report.PagesFetched != 1 || report.PagesValidated != 1 {
		t.Errorf("counters = fetched %d validated %d, want 1/1",
			report.PagesFetched, report.PagesValidated)
	}
	if len(report.Evidence) != 2 {
		t.Fatalf("expected 2 evidence items, got %d: %+v", len(report.Evidence), report.Evidence)
	}

	profile := report.Evidence[0]
	if profile.Kind != model.EvidenceProfile || profile.Trust != model.TrustHigh {
		t.Errorf("unexpected profile evidence: %+v", profile)
	}
	if profile.Hostname != "127.0.0.1" {
		t.Errorf("unexpected hostname: %q", profile.Hostname)
	}

	email := report.Evidence[1]
	if email.Kind != model.EvidenceEmail || email.Trust != model.TrustHigh {
		t.Errorf("unexpected email evidence: %+v", email)
	}
	if email.Datum != "ana.paz@gmail.com" {
		t.Errorf("unexpected email datum: %q", email.Datum)
	}
}

// TestCollectRejectsUnrelatedPage tests that a page without the subject's
// name in title or description produces no evidence at all.
func TestCollectRejectsUnrelatedPage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Noticias del día</title></head>
<body>Ana Paz aparece solo en el cuerpo. ana.paz@gmail.com</body></html>`))
	}))
	defer server.Close()

	provider := &fakeProvider{queries: []string{"q"}, urls: []string{server.URL}}
	collect := NewCollectStep(provider, fetch.NewPageFetcher(),
		classify.New(testDomains()), &fakeEnumerator{})

	scan := NewSubjectScan(model.Subject{FullName: "Ana Paz"})
	if err := collect.Do(context.Background(), scan); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if scan.Report.PagesValidated != 0 {
		t.Errorf("expected 0 validated pages, got %d", scan.Report.PagesValidated)
	}
	if got := scan.Report.CollectedCount(); got != 0 {
		t.Errorf("expected no evidence, got %d items", got)
	}
}

// TestCollectDeduplicatesURLs tests that a URL surfaced by several queries
// is processed once.
func TestCollectDeduplicatesURLs(t *testing.T) {
	t.Parallel()

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		_, _ = w.Write([]byte(`<html><head><title>Ana Paz</title></head><body></body></html>`))
	}))
	defer server.Close()

	provider := &fakeProvider{queries: []string{"q1", "q2", "q3"}, urls: []string{server.URL}}
	collect := NewCollectStep(provider, fetch.NewPageFetcher(),
		classify.New(testDomains()), &fakeEnumerator{})

	scan := NewSubjectScan(model.Subject{FullName: "Ana Paz"})
	if err := collect.Do(context.Background(), scan); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if requests != 1 {
		t.Errorf("expected 1 fetch for deduplicated URL, got %d", requests)
	}
	if scan.Report.PagesFetched != 1 {
		t.Errorf("expected PagesFetched 1, got %d", scan.Report.PagesFetched)
	}
}

// TestCollectEnumeratedProfiles tests the enumeration branch: profile URLs
// from the enumerator are classified and recorded without page validation.
func TestCollectEnumeratedProfiles(t *testing.T) {
	t.Parallel()

	enumerator := &fakeEnumerator{urls: []string{
		"https://www.instagram.com/anapaz",
		"https://unknownsite.example/anapaz",
	}}
	provider := &fakeProvider{} // no queries, web branch idle
	collect := NewCollectStep(provider, fetch.NewPageFetcher(),
		classify.New(config.DefaultDomains()), enumerator)

	scan := NewSubjectScan(model.Subject{FullName: "Ana Paz"})
	if err := collect.Do(context.Background(), scan); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	scan.Report.Finalize(config.DefaultMaxEvidence)

	// 3 distinct username variants, each returning the same 2 URLs.
	if len(scan.Report.Evidence) != 5 {
		t.Fatalf("expected evidence capped at 5, got %d", len(scan.Report.Evidence))
	}
	first := scan.Report.Evidence[0]
	if first.Kind != model.EvidenceSherlockProfile {
		t.Errorf("unexpected kind: %v", first.Kind)
	}
	if first.Trust != model.TrustMedium || first.Hostname != "www.instagram.com" {
		t.Errorf("unexpected social profile evidence: %+v", first)
	}
	// "anapaz" appears twice among the raw variants and is deduplicated.
	if len(enumerator.calls) != 3 {
		t.Errorf("expected 3 username variants, got %v", enumerator.calls)
	}
}

// TestCollectGracefulDegradation tests that a dead fetch target and an
// empty enumerator still produce a clean empty report.
func TestCollectGracefulDegradation(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{queries: []string{"q"}, urls: []string{"http://127.0.0.1:1/"}}
	collect := NewCollectStep(provider, fetch.NewPageFetcher(),
		classify.New(config.DefaultDomains()), &fakeEnumerator{})

	p := New()
	p.AddSteps(collect, NewRankStep(config.DefaultMaxEvidence))

	scan := NewSubjectScan(model.Subject{FullName: "Ana Paz"})
	if err := p.Execute(context.Background(), scan); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(scan.Report.Evidence) != 0 {
		t.Errorf("expected empty evidence, got %+v", scan.Report.Evidence)
	}
	if scan.Report.TimedOut {
		t.Error("expected no timeout flag")
	}
}

// slowEnumerator blocks until its context is done.
type slowEnumerator struct{}

func (slowEnumerator) Enumerate(ctx context.Context, _ string) []string {
	<-ctx.Done()
	return nil
}

// TestCollectSubjectBudget tests that an expired subject budget marks the
// report timed out while keeping evidence gathered before expiry.
func TestCollectSubjectBudget(t *testing.T) {
	t.Parallel()

	collect := NewCollectStep(&fakeProvider{}, fetch.NewPageFetcher(),
		classify.New(config.DefaultDomains()), slowEnumerator{},
		WithSubjectTimeout(50*time.Millisecond))

	scan := NewSubjectScan(model.Subject{FullName: "Ana Paz"})
	if err := collect.Do(context.Background(), scan); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if !scan.Report.TimedOut {
		t.Error("expected report marked timed out")
	}
}
