// Package main provides the entry point for the rastro CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for rastro.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rastro",
		Short: "OSINT evidence aggregation for named subjects",
		Long: `Rastro gathers open-source intelligence evidence about named individuals.

Given a seed list of subjects, it generates enriched search queries,
validates that discovered pages actually concern each subject, extracts
contact evidence, and ranks everything by source trust. Results are
written as a JSON artifact and saved to a local run history for
comparison across runs.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
