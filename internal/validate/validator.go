package validate

import (
	"strings"

	"github.com/osintbo/rastro/internal/model"
)

// PageMatches reports whether a fetched page is relevant to the subject.
//
// The subject's full name must appear, case-insensitively, as an exact
// substring of the page's title and meta description combined. Only those
// two fields are consulted: they are author-curated summaries, so a body
// text that merely mentions the name in passing does not qualify the page.
func PageMatches(subject model.Subject, page *model.PageContent) bool {
	if page.Empty() {
		return false
	}

	name := normalize(subject.FullName)
	if name == "" {
		return false
	}
	haystack := normalize(page.Title + " " + page.Description)
	return strings.Contains(haystack, name)
}

// normalize lowercases and collapses runs of whitespace so that name and
// page text compare on the same footing regardless of formatting.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
