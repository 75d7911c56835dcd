package model

// MaxBodySize is the maximum number of raw page bytes kept in memory.
// Larger responses are truncated. Contact extraction and name validation
// operate on the leading portion of a page, so the cap loses nothing the
// pipeline would use.
const MaxBodySize = 5 * 1024 * 1024 // 5MB

// PageContent holds the fetched body of a candidate URL together with the
// pieces the validator parses out of it. It is transient: discarded as soon
// as extraction finishes, and never serialized.
type PageContent struct {
	// URL is the address the content was fetched from.
	URL string

	// StatusCode is the HTTP response status.
	StatusCode int

	// Body is the raw response text, capped at MaxBodySize.
	Body string

	// Title is the page title, populated by the validator.
	Title string

	// Description is the meta-description content, populated by the
	// validator.
	Description string

	// Text is the visible text of the page, populated by the validator
	// and consumed by contact extraction.
	Text string
}

// Empty reports whether the page carries no usable content.
// A nil receiver is also empty, which lets fetch failures flow through the
// pipeline as "no evidence" without nil checks at every call site.
func (p *PageContent) Empty() bool {
	return p == nil || p.Body == ""
}

// TruncateBody enforces the MaxBodySize cap.
func (p *PageContent) TruncateBody() {
	if len(p.Body) > MaxBodySize {
		p.Body = p.Body[:MaxBodySize]
	}
}
