package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/osintbo/rastro/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables per-evidence provenance detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run report as plain text.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Rastro run %s (provider: %s)\n", report.RunID, report.Provider)
	fmt.Fprintf(&b, "Started: %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST"))
	b.WriteString(strings.Repeat("=", 60) + "\n")

	for _, subject := range report.Subjects {
		w.writeSubject(&b, subject)
	}

	fmt.Fprintf(&b, "\n%d subject(s) processed.\n", len(report.Subjects))

	return io.WriteString(w.output, b.String())
}

// writeSubject appends one subject's section.
func (w *SimpleWriter) writeSubject(b *strings.Builder, subject *model.SubjectReport) {
	fmt.Fprintf(b, "\n%s", subject.Name)
	if subject.NationalID != "" {
		fmt.Fprintf(b, " (ID %s)", subject.NationalID)
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "  pages fetched: %d, validated: %d\n",
		subject.PagesFetched, subject.PagesValidated)
	if subject.TimedOut {
		b.WriteString("  [!] scan budget expired, partial evidence\n")
	}

	if len(subject.Evidence) == 0 {
		b.WriteString("  no evidence found\n")
		return
	}

	for i, item := range subject.Evidence {
		datum := item.URL
		if item.Datum != "" {
			datum = item.Datum
		}
		fmt.Fprintf(b, "  %d. [%s] %s (%s)\n", i+1, item.Trust, datum, item.Kind)
		if w.verbose {
			fmt.Fprintf(b, "     source: %s, hostname: %s\n", item.Source, item.Hostname)
		}
	}
}
