package query

import (
	"fmt"

	"github.com/osintbo/rastro/internal/model"
)

// regionTerm is appended to every query to bias providers toward the
// country the allow-lists cover.
const regionTerm = "Bolivia"

// socialKeywords are the platform names combined with the subject's name to
// surface social profiles through general web search.
var socialKeywords = []string{"Instagram", "Facebook", "Twitter", "LinkedIn"}

// Plan produces the ordered, distinct search queries for a subject.
//
// The full name is always quoted as an exact phrase to bias providers toward
// precise matches. High-signal variants (national ID, organization, region)
// come first; variants whose optional field is missing are omitted, and the
// social-keyword variants always follow. Duplicates are removed keeping the
// first occurrence.
func Plan(subject model.Subject) []string {
	queries := make([]string, 0, 3+len(socialKeywords))
	quoted := fmt.Sprintf("%q", subject.FullName)

	if subject.NationalID != "" {
		queries = append(queries, fmt.Sprintf("%s %s %s", quoted, subject.NationalID, regionTerm))
	}
	if subject.Organization != "" {
		queries = append(queries, fmt.Sprintf("%s %s %s", quoted, subject.Organization, regionTerm))
	}
	if subject.Region != "" {
		queries = append(queries, fmt.Sprintf("%s %s %s", quoted, subject.Region, regionTerm))
	}
	for _, keyword := range socialKeywords {
		queries = append(queries, fmt.Sprintf("%s %s %s", quoted, regionTerm, keyword))
	}

	return dedupe(queries)
}

// FallbackQuery is the single combined query used by the fallback provider,
// which lacks the per-field enrichment signal of the primary.
func FallbackQuery(subject model.Subject) string {
	return fmt.Sprintf("%q %s Instagram OR Facebook OR Twitter OR LinkedIn",
		subject.FullName, regionTerm)
}

// dedupe removes duplicate strings keeping first occurrence order.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := values[:0]
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}
