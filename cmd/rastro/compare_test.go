package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/osintbo/rastro/internal/database"
	"github.com/osintbo/rastro/internal/model"
)

// TestNewCompareCmd tests the compare command creation.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "compare [full-name]" {
			t.Errorf("expected use 'compare [full-name]', got %q", cmd.Use)
		}
	})

	t.Run("has list-subjects flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("list-subjects")
		if flag == nil {
			t.Fatal("expected list-subjects flag")
		}
		if flag.Shorthand != "L" {
			t.Errorf("expected shorthand 'L', got %q", flag.Shorthand)
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("expected shorthand 'j', got %q", flag.Shorthand)
		}
	})

	t.Run("requires a name without list-subjects", func(t *testing.T) {
		t.Parallel()
		c := NewCompareCmd()
		c.SetOut(&bytes.Buffer{})
		c.SetErr(&bytes.Buffer{})
		c.SetArgs([]string{})
		if err := c.Execute(); err == nil {
			t.Error("expected error when no subject name is given")
		}
	})
}

// storedWith builds a stored report with the given run ID and evidence.
func storedWith(runID string, startedAt time.Time, evidence []model.Evidence) database.StoredReport {
	return database.StoredReport{
		RunID:     runID,
		StartedAt: startedAt,
		Provider:  "google",
		Report: &model.SubjectReport{
			Name:           "Ana Paz",
			DateScanned:    startedAt,
			Evidence:       evidence,
			PagesFetched:   len(evidence),
			PagesValidated: len(evidence),
		},
	}
}

// TestDiffReports tests evidence diffing between two stored reports.
func TestDiffReports(t *testing.T) {
	t.Parallel()

	profile := model.Evidence{
		Kind:     model.EvidenceProfile,
		Source:   model.SourceSocial,
		Hostname: "www.facebook.com",
		URL:      "https://www.facebook.com/ana.paz",
		Trust:    model.TrustMedium,
	}
	email := model.Evidence{
		Kind:     model.EvidenceEmail,
		Source:   model.SourceOfficial,
		Hostname: "ahoraelpueblo.bo",
		Datum:    "ana.paz@gmail.com",
		Trust:    model.TrustHigh,
	}
	phone := model.Evidence{
		Kind:     model.EvidencePhone,
		Source:   model.SourceGeneral,
		Hostname: "example.com",
		Datum:    "+59171234567",
		Trust:    model.TrustMedium,
	}

	now := time.Now()
	earlier := now.Add(-24 * time.Hour)

	t.Run("detects added and removed evidence", func(t *testing.T) {
		t.Parallel()
		current := storedWith("run-2", now, []model.Evidence{profile, email})
		previous := storedWith("run-1", earlier, []model.Evidence{profile, phone})

		diff := diffReports(current, previous)

		if diff.Name != "Ana Paz" {
			t.Errorf("expected name 'Ana Paz', got %q", diff.Name)
		}
		if d := cmp.Diff([]model.Evidence{email}, diff.Added); d != "" {
			t.Errorf("added evidence mismatch (-want +got):\n%s", d)
		}
		if d := cmp.Diff([]model.Evidence{phone}, diff.Removed); d != "" {
			t.Errorf("removed evidence mismatch (-want +got):\n%s", d)
		}
	})

	t.Run("identical evidence yields empty diff", func(t *testing.T) {
		t.Parallel()
		current := storedWith("run-2", now, []model.Evidence{profile, email})
		previous := storedWith("run-1", earlier, []model.Evidence{profile, email})

		diff := diffReports(current, previous)
		if len(diff.Added) != 0 || len(diff.Removed) != 0 {
			t.Errorf("expected empty diff, got added=%v removed=%v", diff.Added, diff.Removed)
		}
	})

	t.Run("trust change alone is not churn", func(t *testing.T) {
		t.Parallel()
		downgraded := profile
		downgraded.Trust = model.TrustLow
		downgraded.Source = model.SourceGeneral

		current := storedWith("run-2", now, []model.Evidence{downgraded})
		previous := storedWith("run-1", earlier, []model.Evidence{profile})

		diff := diffReports(current, previous)
		if len(diff.Added) != 0 || len(diff.Removed) != 0 {
			t.Errorf("expected empty diff for trust-only change, got added=%v removed=%v",
				diff.Added, diff.Removed)
		}
	})

	t.Run("computes page-count deltas", func(t *testing.T) {
		t.Parallel()
		current := storedWith("run-2", now, []model.Evidence{profile, email, phone})
		previous := storedWith("run-1", earlier, []model.Evidence{profile})

		diff := diffReports(current, previous)
		if diff.FetchedDelta != 2 {
			t.Errorf("expected fetched delta 2, got %d", diff.FetchedDelta)
		}
		if diff.ValidatedDelta != 2 {
			t.Errorf("expected validated delta 2, got %d", diff.ValidatedDelta)
		}
	})
}

// TestEvidenceKey tests the identity key used for diffing.
func TestEvidenceKey(t *testing.T) {
	t.Parallel()

	a := model.Evidence{Kind: model.EvidenceProfile, URL: "https://example.com/a"}
	b := model.Evidence{Kind: model.EvidenceProfile, URL: "https://example.com/b"}
	if evidenceKey(a) == evidenceKey(b) {
		t.Error("expected different URLs to produce different keys")
	}

	emailEv := model.Evidence{Kind: model.EvidenceEmail, Datum: "x@gmail.com"}
	phoneEv := model.Evidence{Kind: model.EvidencePhone, Datum: "x@gmail.com"}
	if evidenceKey(emailEv) == evidenceKey(phoneEv) {
		t.Error("expected different kinds to produce different keys")
	}
}

// TestPrintEvidenceSet tests the text rendering of one diff section.
func TestPrintEvidenceSet(t *testing.T) {
	t.Parallel()

	t.Run("renders items with URL or datum detail", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		printEvidenceSet(&buf, "New evidence", []model.Evidence{
			{Kind: model.EvidenceProfile, Hostname: "example.com", URL: "https://example.com/p", Trust: model.TrustLow},
			{Kind: model.EvidenceEmail, Hostname: "example.com", Datum: "a@gmail.com", Trust: model.TrustMedium},
		})

		out := buf.String()
		if !strings.Contains(out, "New evidence (2):") {
			t.Errorf("expected section header with count, got %q", out)
		}
		if !strings.Contains(out, "https://example.com/p") {
			t.Error("expected profile URL in output")
		}
		if !strings.Contains(out, "a@gmail.com") {
			t.Error("expected email datum in output")
		}
	})

	t.Run("renders placeholder for empty set", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		printEvidenceSet(&buf, "No longer found", nil)

		if !strings.Contains(buf.String(), "(none)") {
			t.Errorf("expected '(none)' placeholder, got %q", buf.String())
		}
	})
}
