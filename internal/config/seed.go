package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osintbo/rastro/internal/model"
)

// SeedFile is the YAML structure of the subject seed list.
type SeedFile struct {
	// Subjects are the seed records, processed in file order.
	Subjects []model.Subject `yaml:"subjects"`
}

// SeedResult is the outcome of loading a seed file.
type SeedResult struct {
	// Subjects are the valid seed records, in file order.
	Subjects []model.Subject

	// Skipped counts records rejected for missing or whitespace-only
	// names. A skipped record never aborts the run; the CLI logs each one.
	Skipped int
}

// placeholder values seed files use to mark absent fields.
// The original spreadsheets exported "-" and the typographic dash "—".
var placeholders = map[string]bool{
	"-": true,
	"—": true,
}

// LoadSeedFile reads the subject seed list at path.
// Placeholder field values are normalized to empty strings, and records
// without a usable full name are dropped (counted in SeedResult.Skipped)
// rather than failing the whole run.
func LoadSeedFile(path string) (*SeedResult, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	result := &SeedResult{Subjects: make([]model.Subject, 0, len(file.Subjects))}
	for _, subject := range file.Subjects {
		cleaned := cleanSubject(subject)
		if err := cleaned.Validate(); err != nil {
			result.Skipped++
			continue
		}
		result.Subjects = append(result.Subjects, cleaned)
	}
	return result, nil
}

// cleanSubject normalizes placeholder values in all optional fields.
// The full name is only trimmed; Validate decides whether it is usable.
func cleanSubject(s model.Subject) model.Subject {
	s.FullName = strings.TrimSpace(s.FullName)
	s.NationalID = cleanField(s.NationalID)
	s.Gender = cleanField(s.Gender)
	s.Age = cleanField(s.Age)
	s.BirthDate = cleanField(s.BirthDate)
	s.Organization = cleanField(s.Organization)
	s.Region = cleanField(s.Region)
	s.Role = cleanField(s.Role)
	s.Handle = cleanField(s.Handle)
	return s
}

func cleanField(v string) string {
	v = strings.TrimSpace(v)
	if placeholders[v] {
		return ""
	}
	return v
}
