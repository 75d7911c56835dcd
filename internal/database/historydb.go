package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/osintbo/rastro/internal/model"
)

// HistoryDB provides SQLite-based storage for completed runs. Saved runs
// back the compare command, which diffs a subject's evidence across runs.
//
// Design decision: We use a single database file for all runs rather than
// one file per run. This keeps cross-run queries (the whole point of the
// history) in plain SQL and simplifies backup/restore.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an error
// is returned instead of silently creating an empty history.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "rastro.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; multiple readers gain little here.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the database file location.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Runs store per-execution metadata
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		provider TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Subject reports store one row per subject per run, with the full
	-- JSON artifact for lossless reconstruction
	CREATE TABLE IF NOT EXISTS subject_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		national_id TEXT,
		date_scanned DATETIME NOT NULL,
		pages_fetched INTEGER NOT NULL DEFAULT 0,
		pages_validated INTEGER NOT NULL DEFAULT 0,
		timed_out INTEGER NOT NULL DEFAULT 0,
		report_json TEXT NOT NULL,
		UNIQUE(run_id, name)
	);

	CREATE INDEX IF NOT EXISTS idx_subject_reports_name ON subject_reports(name);

	-- Evidence items in rank order for structured queries
	CREATE TABLE IF NOT EXISTS evidence (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject_report_id INTEGER NOT NULL REFERENCES subject_reports(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		kind TEXT NOT NULL,
		source_kind TEXT NOT NULL,
		hostname TEXT,
		url TEXT,
		datum TEXT,
		trust TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_evidence_report ON evidence(subject_report_id);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun persists a complete run: metadata, every subject report, and all
// evidence items, in one transaction.
func (hdb *HistoryDB) SaveRun(ctx context.Context, run *model.RunReport) error {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (run_id, started_at, provider) VALUES (?, ?, ?)",
		run.RunID, run.StartedAt.UTC().Format(time.RFC3339), run.Provider,
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, subject := range run.Subjects {
		reportJSON, err := json.Marshal(subject)
		if err != nil {
			return fmt.Errorf("failed to serialize subject report: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			INSERT INTO subject_reports
				(run_id, name, national_id, date_scanned, pages_fetched, pages_validated, timed_out, report_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID,
			subject.Name,
			subject.NationalID,
			subject.DateScanned.UTC().Format(time.RFC3339),
			subject.PagesFetched,
			subject.PagesValidated,
			subject.TimedOut,
			string(reportJSON),
		)
		if err != nil {
			return fmt.Errorf("failed to insert subject report: %w", err)
		}

		reportID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read subject report id: %w", err)
		}

		for position, item := range subject.Evidence {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO evidence
					(subject_report_id, position, kind, source_kind, hostname, url, datum, trust)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				reportID,
				position,
				string(item.Kind),
				item.Source.String(),
				item.Hostname,
				item.URL,
				item.Datum,
				item.Trust.String(),
			); err != nil {
				return fmt.Errorf("failed to insert evidence: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// StoredReport is a subject report loaded from history, paired with the
// run it came from.
type StoredReport struct {
	RunID     string
	StartedAt time.Time
	Provider  string
	Report    *model.SubjectReport
}

// LatestReports returns up to limit stored reports for the named subject,
// most recent first. An unknown subject returns an empty slice, not an
// error.
func (hdb *HistoryDB) LatestReports(ctx context.Context, name string, limit int) ([]StoredReport, error) {
	rows, err := hdb.db.QueryContext(ctx, `
		SELECT r.run_id, r.started_at, r.provider, s.report_json
		FROM subject_reports s
		JOIN runs r ON r.run_id = s.run_id
		WHERE s.name = ?
		ORDER BY r.started_at DESC, r.created_at DESC
		LIMIT ?`,
		name, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // read-only query

	var results []StoredReport
	for rows.Next() {
		var stored StoredReport
		var startedAt, reportJSON string
		if err := rows.Scan(&stored.RunID, &startedAt, &stored.Provider, &reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		stored.StartedAt = parseTimestamp(startedAt)

		var report model.SubjectReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			return nil, fmt.Errorf("failed to parse stored report: %w", err)
		}
		stored.Report = &report

		results = append(results, stored)
	}
	return results, rows.Err()
}

// SubjectNames returns the distinct subject names present in the history,
// alphabetically.
func (hdb *HistoryDB) SubjectNames(ctx context.Context) ([]string, error) {
	rows, err := hdb.db.QueryContext(ctx,
		"SELECT DISTINCT name FROM subject_reports ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query subject names: %w", err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // read-only query

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan subject name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// RunCount returns the number of stored runs.
func (hdb *HistoryDB) RunCount(ctx context.Context) (int, error) {
	var count int
	if err := hdb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

// timestampFormats lists the formats SQLite may hand back depending on how
// a value was written.
var timestampFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
