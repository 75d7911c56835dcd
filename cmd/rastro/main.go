// Package main provides the entry point for the rastro CLI.
//
// Rastro is an OSINT evidence-aggregation tool: given a seed list of
// subjects (name, optional national ID, organization, region) it discovers
// candidate web pages and social profiles, validates that each page
// concerns the subject, extracts contact evidence, and emits a ranked,
// capped report per subject.
//
// Usage:
//
//	rastro scan subjects.yaml
//	rastro compare "Ana Paz"
//
// See --help for all available options.
package main

// main is the entry point for rastro.
func main() {
	Execute()
}
