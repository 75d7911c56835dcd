package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osintbo/rastro/internal/config"
	"github.com/osintbo/rastro/internal/database"
	"github.com/osintbo/rastro/internal/model"
)

// NewCompareCmd creates the compare command.
// This command compares the latest two stored reports for a subject.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [full-name]",
		Short: "Compare the latest two stored reports for a subject",
		Long: `Compare shows how a subject's evidence changed between the two most
recent scans stored in the history database.

The comparison shows:
- New evidence that appeared since the previous scan
- Evidence from the previous scan that is no longer found
- Changes in the fetched and validated page counts

At least two stored scans are required. Use 'rastro scan' to run and
store scans first.

Examples:
  # Compare the latest two scans for a subject
  rastro compare "Ana Paz"

  # List all subjects present in the history database
  rastro compare --list-subjects

  # Output the comparison in JSON format
  rastro compare --json "Ana Paz"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("list-subjects", "L", false,
		"List all subjects stored in the history database")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listSubjects, err := cmd.Flags().GetBool("list-subjects")
	if err != nil {
		return err
	}

	// Validate arguments before touching the database so a usage mistake
	// does not leave lock files behind.
	var name string
	if !listSubjects {
		if len(args) == 0 {
			return errors.New("subject name is required (use --list-subjects to see stored subjects)")
		}
		name = strings.TrimSpace(args[0])
		if name == "" {
			return errors.New("subject name must not be blank")
		}
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(config.XDGDataDir(), opts)
	if err != nil {
		return fmt.Errorf("failed to open database (run 'rastro scan' first): %w", err)
	}
	defer func() { _ = db.Close() }() //nolint:errcheck // read-only close on exit

	ctx := cmd.Context()

	if listSubjects {
		return listStoredSubjects(ctx, cmd, db)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	return runComparison(ctx, cmd, db, name, jsonOutput)
}

// listStoredSubjects prints every subject with stored reports.
func listStoredSubjects(ctx context.Context, cmd *cobra.Command, db *database.HistoryDB) error {
	names, err := db.SubjectNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list subjects: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintln(out, "No stored subjects found in the database.")
		fmt.Fprintln(out, "\nUse 'rastro scan <seed-file>' to run and store a scan.")
		return nil
	}

	fmt.Fprintf(out, "Stored subjects (%d):\n\n", len(names))
	for _, n := range names {
		fmt.Fprintf(out, "  • %s\n", n)
	}
	fmt.Fprintln(out, "\nUse 'rastro compare <full-name>' to compare a subject's latest scans.")
	return nil
}

// evidenceDiff is the comparison result between two stored reports.
type evidenceDiff struct {
	Name             string           `json:"name"`
	CurrentRunID     string           `json:"current_run_id"`
	PreviousRunID    string           `json:"previous_run_id"`
	Added            []model.Evidence `json:"added"`
	Removed          []model.Evidence `json:"removed"`
	FetchedDelta     int              `json:"fetched_delta"`
	ValidatedDelta   int              `json:"validated_delta"`
	CurrentTimedOut  bool             `json:"current_timed_out"`
	PreviousTimedOut bool             `json:"previous_timed_out"`
}

// runComparison diffs the two most recent stored reports for name.
func runComparison(ctx context.Context, cmd *cobra.Command, db *database.HistoryDB, name string, jsonOutput bool) error {
	stored, err := db.LatestReports(ctx, name, 2)
	if err != nil {
		return fmt.Errorf("failed to load reports: %w", err)
	}
	switch len(stored) {
	case 0:
		return fmt.Errorf("no stored reports for %q (use --list-subjects to see stored subjects)", name)
	case 1:
		return fmt.Errorf("only one stored report for %q; at least two scans are required", name)
	}

	current, previous := stored[0], stored[1]
	diff := diffReports(current, previous)

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(diff)
	}

	fmt.Fprintf(out, "Comparison for %s\n", diff.Name)
	fmt.Fprintf(out, "  current:  run %s (%s)\n", current.RunID, current.StartedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "  previous: run %s (%s)\n\n", previous.RunID, previous.StartedAt.Format("2006-01-02 15:04"))

	printEvidenceSet(out, "New evidence", diff.Added)
	printEvidenceSet(out, "No longer found", diff.Removed)

	fmt.Fprintf(out, "Pages fetched:   %+d\n", diff.FetchedDelta)
	fmt.Fprintf(out, "Pages validated: %+d\n", diff.ValidatedDelta)
	if diff.CurrentTimedOut && !diff.PreviousTimedOut {
		fmt.Fprintln(out, "\nNote: the current scan hit its time budget; differences may be incomplete.")
	}
	return nil
}

// printEvidenceSet writes one diff section in list form.
func printEvidenceSet(out io.Writer, title string, items []model.Evidence) {
	fmt.Fprintf(out, "%s (%d):\n", title, len(items))
	if len(items) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, ev := range items {
		detail := ev.URL
		if detail == "" {
			detail = ev.Datum
		}
		fmt.Fprintf(out, "  • [%s] %s (%s, trust: %s)\n", ev.Kind, detail, ev.Hostname, ev.Trust)
	}
	fmt.Fprintln(out)
}

// diffReports computes added and removed evidence between two stored
// reports. Evidence identity is the kind plus its URL or datum payload;
// trust and source changes alone do not count as churn.
func diffReports(current, previous database.StoredReport) evidenceDiff {
	diff := evidenceDiff{
		Name:             current.Report.Name,
		CurrentRunID:     current.RunID,
		PreviousRunID:    previous.RunID,
		Added:            []model.Evidence{},
		Removed:          []model.Evidence{},
		FetchedDelta:     current.Report.PagesFetched - previous.Report.PagesFetched,
		ValidatedDelta:   current.Report.PagesValidated - previous.Report.PagesValidated,
		CurrentTimedOut:  current.Report.TimedOut,
		PreviousTimedOut: previous.Report.TimedOut,
	}

	prevSet := make(map[string]bool, len(previous.Report.Evidence))
	for _, ev := range previous.Report.Evidence {
		prevSet[evidenceKey(ev)] = true
	}
	currSet := make(map[string]bool, len(current.Report.Evidence))
	for _, ev := range current.Report.Evidence {
		currSet[evidenceKey(ev)] = true
	}

	for _, ev := range current.Report.Evidence {
		if !prevSet[evidenceKey(ev)] {
			diff.Added = append(diff.Added, ev)
		}
	}
	for _, ev := range previous.Report.Evidence {
		if !currSet[evidenceKey(ev)] {
			diff.Removed = append(diff.Removed, ev)
		}
	}
	return diff
}

// evidenceKey builds the identity key used for diffing.
func evidenceKey(ev model.Evidence) string {
	return fmt.Sprintf("%s|%s|%s", ev.Kind, ev.URL, ev.Datum)
}
