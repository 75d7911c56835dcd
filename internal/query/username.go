package query

import (
	"strings"

	"github.com/osintbo/rastro/internal/model"
)

// UsernameVariants derives the candidate usernames checked by the
// enumerator from the subject's lower-cased name tokens: all tokens
// concatenated, dot-joined, first+last, and first_last. A known handle from
// the seed record, when present, is tried first.
//
// The result is deduplicated preserving order (for a single-token name most
// variants collapse into one) and empty for an invalid subject, so the
// enumeration branch degrades to a no-op instead of indexing into an empty
// token list.
func UsernameVariants(subject model.Subject) []string {
	tokens := subject.NameTokens()
	if len(tokens) == 0 {
		return nil
	}

	first := tokens[0]
	last := tokens[len(tokens)-1]

	variants := make([]string, 0, 5)
	if handle := strings.TrimSpace(strings.ToLower(subject.Handle)); handle != "" {
		variants = append(variants, handle)
	}
	variants = append(variants,
		strings.Join(tokens, ""),
		strings.Join(tokens, "."),
		first+last,
		first+"_"+last,
	)

	return dedupe(variants)
}
