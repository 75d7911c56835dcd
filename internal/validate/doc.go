// Package validate gates fetched pages on subject relevance.
//
// A page counts as evidence only when every token of the subject's name
// appears in the page's title and meta description combined. The gate is
// deliberately narrow: title and description are author-curated summaries,
// so a name match there is a far stronger relevance signal than a match
// buried anywhere in the body text.
package validate
