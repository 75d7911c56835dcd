// Package model defines the core data structures used throughout rastro.
//
// This package contains the following main types:
//   - Subject: The biographic seed record describing a person of interest
//   - Evidence: One discrete fact (profile URL, email, phone) with provenance
//   - SubjectReport: The ranked, capped evidence set produced per subject
//   - RunReport: The terminal output artifact covering a whole run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (pipeline, report, database) need these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
