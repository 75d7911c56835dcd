// Package query turns a subject's seed record into the search-query variants
// and username variants that drive evidence discovery.
//
// Both generators are pure functions of the subject: no I/O, no state, and
// deterministic output order. More specific variants come first because the
// search step processes queries in order and deduplicates URLs by first
// occurrence.
package query
