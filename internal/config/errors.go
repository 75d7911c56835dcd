package config

import "errors"

// Configuration validation errors, returned by Config.Validate.
//
// Design decision: Package-level sentinel errors rather than errors created
// inside Validate, so callers can use errors.Is for programmatic handling
// while the messages stay human-readable.
var (
	// ErrNoSeedFile is returned when no subject seed file is specified.
	ErrNoSeedFile = errors.New("no seed file specified: provide a subjects YAML file")

	// ErrUnknownProvider is returned for a provider name other than
	// auto, google, or duckduckgo.
	ErrUnknownProvider = errors.New("unknown search provider: use auto, google, or duckduckgo")

	// ErrInvalidResultsPerQuery is returned when the per-query result
	// hint is not positive.
	ErrInvalidResultsPerQuery = errors.New("invalid results per query: must be positive")

	// ErrInvalidMaxEvidence is returned when the evidence cap is not
	// positive. A cap of zero would make every report empty.
	ErrInvalidMaxEvidence = errors.New("invalid evidence cap: must be positive")

	// ErrInvalidTimeout is returned when a timeout is not positive
	// (or, for the subject budget, negative).
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidInflightLimit is returned when the per-subject fetch
	// concurrency limit is not positive.
	ErrInvalidInflightLimit = errors.New("invalid in-flight fetch limit: must be positive")

	// ErrConflictingReportFormats is returned when both JSON and Markdown
	// output are requested. Only one artifact format is written per run.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
