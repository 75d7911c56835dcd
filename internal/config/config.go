package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. These follow the behavior of the original
// investigation workflow where applicable: a single fetch attempt with a
// 10 second timeout, five results per query, five evidence items per subject,
// and a one minute sherlock budget per username variant.
const (
	// DefaultFetchTimeout bounds a single page fetch. One attempt, no
	// retries; anything slower than this is treated as no evidence.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultSearchTimeout bounds a single search-provider request.
	DefaultSearchTimeout = 15 * time.Second

	// DefaultEnumTimeout bounds one username-enumeration invocation.
	// Sherlock probes hundreds of sites, so this is deliberately generous.
	DefaultEnumTimeout = 60 * time.Second

	// DefaultSubjectTimeout caps the total wall-clock time spent on one
	// subject. On expiry the aggregator ranks whatever evidence has been
	// collected so far rather than blocking indefinitely.
	DefaultSubjectTimeout = 5 * time.Minute

	// DefaultResultsPerQuery is the result-count hint passed to search
	// providers for each query variant.
	DefaultResultsPerQuery = 5

	// DefaultMaxEvidence is the evidence cap per subject report.
	DefaultMaxEvidence = 5

	// DefaultMaxInflightFetches bounds concurrent page fetches within one
	// subject. Keeping this small avoids tripping bot detection on the
	// fetch targets.
	DefaultMaxInflightFetches = 4

	// DefaultBatchSize is the number of subjects processed concurrently.
	// Per-subject pipelines share no state, but downstream search
	// providers rate-limit aggressively, so the default stays low.
	DefaultBatchSize = 2

	// DefaultUserAgent identifies rastro in HTTP requests. A browser-like
	// agent reduces trivial bot blocking on search and profile pages.
	DefaultUserAgent = "Mozilla/5.0 (compatible; rastro/1.0; +https://github.com/osintbo/rastro)"

	// DefaultSherlockCommand is the username-enumeration executable
	// looked up on PATH.
	DefaultSherlockCommand = "sherlock"

	// AppName is the application name used for XDG directory paths.
	AppName = "rastro"
)

// Provider names accepted by Config.Provider.
const (
	// ProviderAuto probes the primary provider once at startup and falls
	// back to the secondary if the probe fails.
	ProviderAuto = "auto"

	// ProviderGoogle forces the primary (Google) search provider.
	ProviderGoogle = "google"

	// ProviderDuckDuckGo forces the fallback (DuckDuckGo) provider.
	ProviderDuckDuckGo = "duckduckgo"
)

// Config holds all options for a rastro run. It is populated from CLI flags
// and the optional configuration file, then passed through the application
// via dependency injection rather than global state.
type Config struct {
	// SeedFile is the path to the YAML subject seed list.
	SeedFile string

	// Provider selects the search provider: "auto", "google", or
	// "duckduckgo". Auto probes the primary once at startup; there is no
	// runtime failover after that.
	Provider string

	// ResultsPerQuery is the result-count hint per query variant.
	ResultsPerQuery int

	// MaxEvidence caps the evidence list of each subject report.
	MaxEvidence int

	// FetchTimeout bounds each page fetch.
	FetchTimeout time.Duration

	// SearchTimeout bounds each search-provider request.
	SearchTimeout time.Duration

	// EnumTimeout bounds each username-enumeration invocation.
	EnumTimeout time.Duration

	// SubjectTimeout caps total wall-clock time per subject.
	// Zero disables the cap.
	SubjectTimeout time.Duration

	// BatchSize is the number of subjects processed concurrently.
	BatchSize int

	// MaxInflightFetches bounds concurrent page fetches per subject.
	MaxInflightFetches int

	// UserAgent is sent with every HTTP request.
	UserAgent string

	// SherlockCommand is the enumeration executable name or path.
	// Empty disables username enumeration.
	SherlockCommand string

	// Domains holds the trust-domain allow-lists.
	Domains Domains

	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// JSONReport writes the run artifact as JSON (the default).
	JSONReport bool

	// MarkdownReport writes the run artifact as Markdown instead of JSON.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// OutputFile is where the run artifact is written.
	// Empty means stdout.
	OutputFile string

	// DBDir is the directory of the SQLite run-history database.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB persists the run to the history database.
	SaveToDB bool

	// ConfigFilePath is an explicit configuration file path. If empty the
	// loader searches .rastro.yaml in the current directory and the XDG
	// config directory.
	ConfigFilePath string
}

// NewConfig creates a Config with default values. Many defaults are
// non-zero, so relying on zero values would be wrong; this constructor also
// documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		Provider:           ProviderAuto,
		ResultsPerQuery:    DefaultResultsPerQuery,
		MaxEvidence:        DefaultMaxEvidence,
		FetchTimeout:       DefaultFetchTimeout,
		SearchTimeout:      DefaultSearchTimeout,
		EnumTimeout:        DefaultEnumTimeout,
		SubjectTimeout:     DefaultSubjectTimeout,
		BatchSize:          DefaultBatchSize,
		MaxInflightFetches: DefaultMaxInflightFetches,
		UserAgent:          DefaultUserAgent,
		SherlockCommand:    DefaultSherlockCommand,
		Domains:            DefaultDomains(),
		JSONReport:         true,
	}
}

// XDGDataDir returns the XDG data directory for rastro.
// On Linux: ~/.local/share/rastro
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for rastro.
// On Linux: ~/.config/rastro
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It is called once after flag and file parsing, before any scanning, so
// bad configuration fails fast with a specific sentinel error.
func (c *Config) Validate() error {
	if c.SeedFile == "" {
		return ErrNoSeedFile
	}
	switch c.Provider {
	case ProviderAuto, ProviderGoogle, ProviderDuckDuckGo:
	default:
		return ErrUnknownProvider
	}
	if c.ResultsPerQuery <= 0 {
		return ErrInvalidResultsPerQuery
	}
	if c.MaxEvidence <= 0 {
		return ErrInvalidMaxEvidence
	}
	if c.FetchTimeout <= 0 || c.SearchTimeout <= 0 || c.EnumTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.SubjectTimeout < 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.MaxInflightFetches <= 0 {
		return ErrInvalidInflightLimit
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
