package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/osintbo/rastro/internal/config"
)

//go:embed templates/rastro.yaml templates/subjects.yaml
var initTemplates embed.FS

// seedFileName is the default seed file name written by init.
const seedFileName = "subjects.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a rastro configuration and seed file",
		Long: `Init creates a starter .rastro.yaml configuration file and a
subjects.yaml seed file in the current directory.

The generated configuration documents every available option with its
default; the seed file shows the subject fields scan understands.

Examples:
  # Create .rastro.yaml and subjects.yaml in the current directory
  rastro init

  # Create the files in a specific directory
  rastro init -o ./scans

  # Force overwrite existing files
  rastro init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", ".",
		"Directory to create the files in")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing files")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputDir, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	files := []struct {
		template string
		target   string
	}{
		{"templates/rastro.yaml", config.ConfigFileName},
		{"templates/subjects.yaml", seedFileName},
	}

	for _, f := range files {
		target := filepath.Join(outputDir, f.target)

		if !force {
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("file already exists: %s (use -f to overwrite)", target)
			}
		}

		content, err := initTemplates.ReadFile(f.template)
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}

		if err := os.WriteFile(target, content, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", target)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit subjects.yaml with the people you are authorized to research,")
	fmt.Fprintln(cmd.OutOrStdout(), "then run: rastro scan subjects.yaml")

	return nil
}
