// Package report serializes run results for humans and tools.
//
// Three formats are supported: indented JSON as the machine-readable
// artifact, Markdown for documentation and sharing, and plain text for
// terminal display. All writers implement the same Writer interface so the
// command layer can fan one run out to several destinations.
package report
