// Package search provides the web-search capability used to discover
// candidate URLs for a subject.
//
// Two concrete providers implement the Provider interface: Google (primary)
// and DuckDuckGo (fallback). Which one is active is decided exactly once at
// startup — by flag or by a single availability probe — never by runtime
// failover. Both scrape the engines' HTML result pages; neither requires
// credentials.
//
// Provider errors degrade, they never abort: a failed or rate-limited
// request yields the results parsed so far, and the caller treats the
// shortfall as a normally terminated result sequence.
package search
