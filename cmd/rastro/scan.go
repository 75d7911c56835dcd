package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/osintbo/rastro/internal/classify"
	"github.com/osintbo/rastro/internal/config"
	"github.com/osintbo/rastro/internal/database"
	"github.com/osintbo/rastro/internal/enumerate"
	"github.com/osintbo/rastro/internal/fetch"
	"github.com/osintbo/rastro/internal/log"
	"github.com/osintbo/rastro/internal/model"
	"github.com/osintbo/rastro/internal/pipeline"
	"github.com/osintbo/rastro/internal/report"
	"github.com/osintbo/rastro/internal/search"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <seed-file>",
		Short: "Scan the subjects listed in a seed file",
		Long: `Scan runs the evidence pipeline for every subject in a YAML seed file.

For each subject it:
- Generates enriched search queries (name + ID, organization, region, social keywords)
- Fans out to the active search provider and deduplicates candidate URLs
- Fetches each page and validates that its title or description names the subject
- Extracts gmail addresses and Bolivian phone numbers bound to the subject
- Enumerates username variants through the sherlock tool, if installed
- Ranks evidence by source trust and keeps at most the configured cap

Examples:
  # Scan with defaults, JSON artifact to stdout
  rastro scan subjects.yaml

  # Force the fallback provider and write the artifact to a file
  rastro scan --provider duckduckgo -o report.json subjects.yaml

  # Markdown artifact, four subjects in parallel
  rastro scan --markdown --batch 4 subjects.yaml

  # Use a custom configuration file
  rastro scan -c myconfig.yaml subjects.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runScanCmd,
	}

	// Search behavior flags
	cmd.Flags().StringP("provider", "p", config.ProviderAuto,
		"Search provider: auto, google, or duckduckgo")
	cmd.Flags().IntP("results", "n", config.DefaultResultsPerQuery,
		"Result-count hint per query variant")
	cmd.Flags().IntP("max-evidence", "e", config.DefaultMaxEvidence,
		"Maximum evidence items per subject")

	// Timing flags
	cmd.Flags().DurationP("fetch-timeout", "t", config.DefaultFetchTimeout,
		"Timeout for each page fetch")
	cmd.Flags().DurationP("subject-timeout", "T", config.DefaultSubjectTimeout,
		"Wall-clock budget per subject (0 disables)")

	// Concurrency flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of subjects scanned concurrently")
	cmd.Flags().IntP("inflight", "i", config.DefaultMaxInflightFetches,
		"Maximum concurrent page fetches per subject")

	// Enumeration flags
	cmd.Flags().StringP("sherlock", "s", config.DefaultSherlockCommand,
		"Username-enumeration executable (empty disables enumeration)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .rastro.yaml in current or XDG config directory)")

	// Report flags
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report instead of JSON")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-db", false,
		"Skip saving the run to the history database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Structured logging with identifier masking
	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the configuration file and cobra flags.
// File values overlay the defaults first; flags the user set explicitly win
// over the file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.SeedFile = args[0]

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly requested config file must exist; without -c, a
	// missing file is fine and defaults apply.
	if cfg.ConfigFilePath != "" {
		if _, err := os.Stat(cfg.ConfigFilePath); err != nil {
			return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
		}
	}
	if configPath := config.FindConfigFile(cfg.ConfigFilePath); configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.Apply(file)
	}

	if cmd.Flags().Changed("provider") {
		if cfg.Provider, err = cmd.Flags().GetString("provider"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("results") {
		if cfg.ResultsPerQuery, err = cmd.Flags().GetInt("results"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-evidence") {
		if cfg.MaxEvidence, err = cmd.Flags().GetInt("max-evidence"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("fetch-timeout") {
		if cfg.FetchTimeout, err = cmd.Flags().GetDuration("fetch-timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("subject-timeout") {
		if cfg.SubjectTimeout, err = cmd.Flags().GetDuration("subject-timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("batch") {
		if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("inflight") {
		if cfg.MaxInflightFetches, err = cmd.Flags().GetInt("inflight"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("sherlock") {
		if cfg.SherlockCommand, err = cmd.Flags().GetString("sherlock"); err != nil {
			return nil, err
		}
	}

	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	cfg.JSONReport = !cfg.MarkdownReport

	if cfg.OutputFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}

	noDB, err := cmd.Flags().GetBool("no-db")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noDB
	cfg.DBDir = config.XDGDataDir()

	return cfg, nil
}

// runScan executes the scan for every subject in the seed file.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	seed, err := config.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		return err
	}
	if seed.Skipped > 0 {
		logger.Warn("skipped seed records without a usable name",
			"skipped", seed.Skipped)
		fmt.Fprintf(os.Stderr, "Warning: %d seed record(s) skipped (missing name)\n", seed.Skipped)
	}
	if len(seed.Subjects) == 0 {
		return fmt.Errorf("seed file %s contains no usable subjects", cfg.SeedFile)
	}

	logger.Info("starting scan",
		"subjects", len(seed.Subjects),
		"provider", cfg.Provider,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open the history database before scanning so a broken history fails
	// fast instead of discarding a finished run.
	var db *database.HistoryDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() { _ = db.Close() }() //nolint:errcheck // read-only close on exit
		logger.Info("history database opened", "dir", cfg.DBDir)
	}

	// Provider selection is a one-time startup decision, not a failover.
	provider := search.Select(ctx, cfg, logger)
	fmt.Fprintf(os.Stderr, "Using search provider: %s\n", provider.Name())

	run := model.NewRunReport(provider.Name())
	run.Subjects = processSubjects(ctx, cfg, provider, logger, seed.Subjects)

	if err := outputReport(cfg, run); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if db != nil {
		if err := db.SaveRun(ctx, run); err != nil {
			logger.Error("failed to save run to history", "error", err)
		} else {
			logger.Info("run saved to history", "runID", run.RunID)
		}
	}

	return nil
}

// processSubjects runs the per-subject pipelines through the batch
// processor and returns the reports in seed order.
func processSubjects(
	ctx context.Context,
	cfg *config.Config,
	provider search.Provider,
	logger *slog.Logger,
	subjects []model.Subject,
) []*model.SubjectReport {
	fetcher := fetch.NewPageFetcher(
		fetch.WithTimeout(cfg.FetchTimeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithLogger(logger),
	)
	classifier := classify.New(cfg.Domains)
	enumerator := newEnumerator(cfg, logger)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			p := pipeline.New(pipeline.WithLogger(logger))
			p.AddSteps(
				pipeline.NewCollectStep(provider, fetcher, classifier, enumerator,
					pipeline.WithResultsPerQuery(cfg.ResultsPerQuery),
					pipeline.WithMaxInflightFetches(cfg.MaxInflightFetches),
					pipeline.WithSubjectTimeout(cfg.SubjectTimeout),
					pipeline.WithCollectLogger(logger),
				),
				pipeline.NewRankStep(cfg.MaxEvidence),
			)
			return p
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	reports := bp.ProcessBatch(ctx, subjects)
	fmt.Fprintf(os.Stderr, "Scanned %d subject(s) in %s\n",
		len(reports), time.Since(startTime).Round(time.Millisecond))
	return reports
}

// noopEnumerator is used when username enumeration is disabled.
type noopEnumerator struct{}

func (noopEnumerator) Enumerate(_ context.Context, _ string) []string {
	return nil
}

// newEnumerator builds the username enumerator, or a no-op when disabled.
func newEnumerator(cfg *config.Config, logger *slog.Logger) enumerate.Enumerator {
	if cfg.SherlockCommand == "" {
		logger.Debug("username enumeration disabled")
		return noopEnumerator{}
	}
	return enumerate.NewSherlock(
		enumerate.WithCommand(cfg.SherlockCommand),
		enumerate.WithTimeout(cfg.EnumTimeout),
		enumerate.WithLogger(logger),
	)
}

// outputReport writes the run artifact in the requested format. When the
// artifact goes to a file, a human-readable summary is printed to stdout.
func outputReport(cfg *config.Config, run *model.RunReport) error {
	var output *os.File
	if cfg.OutputFile != "" {
		dir := filepath.Dir(cfg.OutputFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports contain personal data; keep them owner-readable only.
		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }() //nolint:errcheck // flushed by Write below
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	}

	if _, err := writer.Write(run); err != nil {
		return err
	}

	if cfg.OutputFile != "" {
		summary := report.NewSimpleWriter(os.Stdout)
		if _, err := summary.Write(run); err != nil {
			return err
		}
		fmt.Printf("\nReport written to %s\n", cfg.OutputFile)
	}
	return nil
}
