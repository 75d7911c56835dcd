package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the default configuration file name searched for in the
// current directory and the XDG config directory.
const ConfigFileName = ".rastro.yaml"

// File is the on-disk YAML configuration. Every field is optional; zero
// values leave the corresponding Config default untouched.
type File struct {
	// Provider overrides the search provider selection.
	Provider string `yaml:"provider,omitempty"`

	// ResultsPerQuery overrides the per-query result hint.
	ResultsPerQuery int `yaml:"results_per_query,omitempty"`

	// MaxEvidence overrides the evidence cap per subject.
	MaxEvidence int `yaml:"max_evidence,omitempty"`

	// FetchTimeout overrides the page-fetch timeout.
	FetchTimeout time.Duration `yaml:"fetch_timeout,omitempty"`

	// EnumTimeout overrides the enumeration timeout.
	EnumTimeout time.Duration `yaml:"enum_timeout,omitempty"`

	// SubjectTimeout overrides the per-subject wall-clock budget.
	SubjectTimeout time.Duration `yaml:"subject_timeout,omitempty"`

	// UserAgent overrides the HTTP User-Agent header.
	UserAgent string `yaml:"user_agent,omitempty"`

	// SherlockCommand overrides the enumeration executable.
	SherlockCommand string `yaml:"sherlock_command,omitempty"`

	// Domains overrides one or both trust-domain allow-lists.
	Domains Domains `yaml:"domains,omitempty"`
}

// FindConfigFile locates the configuration file to use.
// If explicitPath is non-empty it is returned as-is (existence is checked by
// the caller so a missing explicit file can be reported as an error).
// Otherwise the current directory and the XDG config directory are searched;
// an empty string means no file was found and defaults apply.
func FindConfigFile(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}
	candidates := []string{
		ConfigFileName,
		filepath.Join(XDGConfigDir(), ConfigFileName),
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// LoadConfigFile reads and parses the YAML configuration file at path.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &file, nil
}

// Apply overlays the file's non-zero values onto the config.
// CLI flags are applied after this, so flags win over the file.
func (c *Config) Apply(file *File) {
	if file == nil {
		return
	}
	if file.Provider != "" {
		c.Provider = file.Provider
	}
	if file.ResultsPerQuery > 0 {
		c.ResultsPerQuery = file.ResultsPerQuery
	}
	if file.MaxEvidence > 0 {
		c.MaxEvidence = file.MaxEvidence
	}
	if file.FetchTimeout > 0 {
		c.FetchTimeout = file.FetchTimeout
	}
	if file.EnumTimeout > 0 {
		c.EnumTimeout = file.EnumTimeout
	}
	if file.SubjectTimeout > 0 {
		c.SubjectTimeout = file.SubjectTimeout
	}
	if file.UserAgent != "" {
		c.UserAgent = file.UserAgent
	}
	if file.SherlockCommand != "" {
		c.SherlockCommand = file.SherlockCommand
	}
	c.Domains = c.Domains.Merge(file.Domains)
}
