package model

import "sort"

// EvidenceKind identifies the variant of an evidence item.
type EvidenceKind string

const (
	// EvidenceProfile is a validated page about the subject found via search.
	EvidenceProfile EvidenceKind = "profile"

	// EvidenceEmail is an email address extracted from a validated page.
	EvidenceEmail EvidenceKind = "email"

	// EvidencePhone is a phone number extracted from a validated page.
	EvidencePhone EvidenceKind = "phone"

	// EvidenceSherlockProfile is a profile URL reported by the username
	// enumerator. These are trusted by construction and bypass page
	// validation.
	EvidenceSherlockProfile EvidenceKind = "sherlock_profile"
)

// Evidence is one discrete fact discovered about a subject, together with
// its provenance. Evidence items are append-only: once created they are
// never mutated, only ranked and truncated.
//
// Design decision: We use a single struct with a Kind discriminator rather
// than an interface with one type per kind because every consumer (ranking,
// reports, database) treats all kinds uniformly, and a flat struct
// serializes cleanly to JSON and SQL.
type Evidence struct {
	// Kind discriminates the evidence variant.
	Kind EvidenceKind `json:"kind"`

	// Source classifies the hostname that produced this item.
	Source SourceKind `json:"source_kind"`

	// Hostname is the host the evidence was found on.
	Hostname string `json:"hostname"`

	// URL is the page or profile address. Empty for contact evidence,
	// whose Datum carries the fact instead.
	URL string `json:"url,omitempty"`

	// Datum is the extracted contact string (email address or phone
	// number). Empty for profile evidence.
	Datum string `json:"datum,omitempty"`

	// Trust is the confidence tier used for ranking.
	// Contact evidence inherits high trust only when its originating page
	// is an official source; otherwise it is medium regardless of the
	// page's own floor.
	Trust TrustLevel `json:"trust"`
}

// ContactTrust returns the trust level for contact evidence extracted from a
// page with the given classification: high when the page is official,
// medium otherwise.
func ContactTrust(pageKind SourceKind) TrustLevel {
	if pageKind == SourceOfficial {
		return TrustHigh
	}
	return TrustMedium
}

// SelectTop ranks evidence and returns the capped result set.
//
// The sort is stable and ascending by trust (high, medium, low), so ties
// keep their discovery order. If any high-trust items exist, the result is
// exactly the high-trust items: once verified high-confidence evidence
// exists, lower-confidence evidence is suppressed entirely rather than
// merely deprioritized. The result is truncated to at most maxItems.
func SelectTop(items []Evidence, maxItems int) []Evidence {
	sorted := make([]Evidence, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Trust < sorted[j].Trust
	})

	top := sorted
	if len(sorted) > 0 && sorted[0].Trust == TrustHigh {
		n := 0
		for n < len(sorted) && sorted[n].Trust == TrustHigh {
			n++
		}
		top = sorted[:n]
	}

	if maxItems >= 0 && len(top) > maxItems {
		top = top[:maxItems]
	}
	return top
}
