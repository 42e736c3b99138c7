package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the local cache database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// The cache holds list-level copies of upstream collections. Payloads
	// are stored as the raw reconcilable JSON, not a local remodeling; the
	// upstream stays the system of record.
	schema := `
	CREATE TABLE IF NOT EXISTS cache_record (
		section TEXT NOT NULL,
		record_id TEXT NOT NULL,
		payload TEXT NOT NULL,
		fetched_at TEXT NOT NULL,
		PRIMARY KEY (section, record_id)
	);

	CREATE TABLE IF NOT EXISTS cache_section (
		section TEXT PRIMARY KEY,
		refreshed_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cache_record_section ON cache_record(section);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
