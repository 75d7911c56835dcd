package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osintbo/rastro/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// titleCaser renders evidence kinds and source names as headings.
	titleCaser cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titleCaser: cases.Title(language.Spanish),
	}
}

// Write outputs the run report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	for _, subject := range report.Subjects {
		w.writeSubject(md, subject)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the run-level metadata table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("Rastro Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + report.RunID + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Search Provider", report.Provider},
			{"Subjects", strconv.Itoa(len(report.Subjects))},
		},
	})
	md.PlainText("")
}

// writeSubject writes one subject's section with its evidence table.
func (w *MarkdownWriter) writeSubject(md *markdown.Markdown, subject *model.SubjectReport) {
	md.H2(subject.Name)
	md.PlainText("")

	summary := []string{
		"Pages fetched: " + strconv.Itoa(subject.PagesFetched),
		"Pages validated: " + strconv.Itoa(subject.PagesValidated),
	}
	if subject.NationalID != "" {
		summary = append([]string{"National ID: `" + subject.NationalID + "`"}, summary...)
	}
	md.BulletList(summary...)
	md.PlainText("")

	if subject.TimedOut {
		md.Alert(markdown.AlertTypeWarning,
			"Scan budget expired; evidence below is partial.")
		md.PlainText("")
	}

	if len(subject.Evidence) == 0 {
		md.PlainText("No evidence found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(subject.Evidence))
	for _, item := range subject.Evidence {
		datum := item.URL
		if item.Datum != "" {
			datum = item.Datum
		}
		rows = append(rows, []string{
			w.displayName(string(item.Kind)),
			w.displayName(string(item.Source)),
			item.Trust.String(),
			item.Hostname,
			datum,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Kind", "Source", "Trust", "Hostname", "Datum"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the closing attribution line.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("Generated by rastro.")
}

// displayName turns snake_case identifiers into title-cased labels.
func (w *MarkdownWriter) displayName(identifier string) string {
	return w.titleCaser.String(strings.ReplaceAll(identifier, "_", " "))
}
