package model

import (
	"errors"
	"strings"
)

// ErrMissingName is returned when a subject record lacks a usable full name.
// The full name drives query planning, page validation, and username-variant
// generation, so a subject without one cannot be processed at all.
var ErrMissingName = errors.New("subject has no full name")

// Subject is the biographic seed record describing one person of interest.
// It is created once from external seed data and never mutated afterwards.
//
// All fields except FullName are optional. Seed files commonly mark missing
// values with "-" or "—"; the loader normalizes those to the empty string
// before the subject reaches the pipeline.
type Subject struct {
	// FullName is the person's complete name. Required.
	FullName string `yaml:"full_name" json:"full_name"`

	// NationalID is the national identity document number, if known.
	// Treated as an opaque string; no format is assumed.
	NationalID string `yaml:"national_id,omitempty" json:"national_id,omitempty"`

	// Gender is the recorded gender marker, if known.
	Gender string `yaml:"gender,omitempty" json:"gender,omitempty"`

	// Age is the recorded age as stated in the seed data.
	Age string `yaml:"age,omitempty" json:"age,omitempty"`

	// BirthDate is the recorded birth date as stated in the seed data.
	BirthDate string `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`

	// Organization is the political organization the subject belongs to.
	Organization string `yaml:"organization,omitempty" json:"organization,omitempty"`

	// Region is the administrative region (departamento) of the subject.
	Region string `yaml:"region,omitempty" json:"region,omitempty"`

	// Role is the political role or candidacy of the subject.
	Role string `yaml:"role,omitempty" json:"role,omitempty"`

	// Handle is a known online username, if any.
	Handle string `yaml:"handle,omitempty" json:"handle,omitempty"`
}

// Validate checks that the subject can be processed.
// A name consisting only of whitespace is rejected the same as a missing one:
// downstream both query planning and username-variant generation index into
// the name tokens and must never see an empty token list.
func (s Subject) Validate() error {
	if strings.TrimSpace(s.FullName) == "" {
		return ErrMissingName
	}
	return nil
}

// NameTokens returns the lower-cased whitespace-separated tokens of the
// subject's full name. Returns an empty slice for an invalid subject.
func (s Subject) NameTokens() []string {
	return strings.Fields(strings.ToLower(s.FullName))
}

// FirstName returns the lower-cased first token of the full name, or the
// empty string for an invalid subject. Used to bind extracted contact
// evidence to the subject rather than to other people named on the same page.
func (s Subject) FirstName() string {
	tokens := s.NameTokens()
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}
