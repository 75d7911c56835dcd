// Package database provides SQLite-based run history storage.
//
// This package implements the HistoryDB, which stores:
//   - Completed runs with their provider and timing metadata
//   - Per-subject reports including the full JSON artifact
//   - Individual evidence items for structured queries
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
