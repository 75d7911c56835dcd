// Package log provides privacy-aware logging built on the standard slog
// package.
//
// Scanning produces personal data by design: email addresses, phone
// numbers, national IDs. That data belongs in the run artifact, which the
// operator controls, not in log streams that get pasted into tickets or
// shipped to aggregators. The MaskingHandler redacts personal identifiers
// from log attributes before they reach the underlying handler:
//   - Attribute keys that denote identity data (national_id, email, phone)
//   - Email-shaped and Bolivian-phone-shaped attribute values
//
// Masking applies even in verbose mode.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Info("contact found",
//	    "email", "someone@gmail.com", // logged as "***MASKED***"
//	    "hostname", "example.com",
//	)
package log
