package cache

import (
	"context"
	"database/sql"
	"time"

	"fitfront/internal/adapters/storage"
)

// timeLayout is the storage format for timestamps.
const timeLayout = time.RFC3339

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new cache store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ReplaceSection atomically replaces a section's cached records.
// PRE: entries all carry the given section
// POST: the section contains exactly the given entries; refreshed_at is set
func (s *SQLiteStore) ReplaceSection(ctx context.Context, section string, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cache_record WHERE section = ?", section); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, e := range entries {
		fetched := e.FetchedAt
		if fetched.IsZero() {
			fetched = now
		}
		_, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO cache_record (section, record_id, payload, fetched_at) VALUES (?, ?, ?, ?)",
			section, e.RecordID, string(e.Payload), fetched.Format(timeLayout),
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO cache_section (section, refreshed_at) VALUES (?, ?) ON CONFLICT(section) DO UPDATE SET refreshed_at=excluded.refreshed_at",
		section, now.Format(timeLayout),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Get returns the cached copy of one record.
// POST: Returns ErrMiss when the record is not cached
func (s *SQLiteStore) Get(ctx context.Context, section, recordID string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT section, record_id, payload, fetched_at FROM cache_record WHERE section = ? AND record_id = ?",
		section, recordID,
	)
	entry, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return Entry{}, ErrMiss
	}
	return entry, err
}

// List returns all cached records for a section.
func (s *SQLiteStore) List(ctx context.Context, section string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT section, record_id, payload, fetched_at FROM cache_record WHERE section = ? ORDER BY rowid",
		section,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// RefreshedAt returns when the section was last replaced.
func (s *SQLiteStore) RefreshedAt(ctx context.Context, section string) (time.Time, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT refreshed_at FROM cache_section WHERE section = ?", section,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}

// Clear drops a section's cached records.
func (s *SQLiteStore) Clear(ctx context.Context, section string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cache_record WHERE section = ?", section)
	return err
}

func scanEntry(scan func(dest ...any) error) (Entry, error) {
	var entry Entry
	var payload, fetched string
	if err := scan(&entry.Section, &entry.RecordID, &payload, &fetched); err != nil {
		return Entry{}, err
	}
	entry.Payload = []byte(payload)
	if t, err := time.Parse(timeLayout, fetched); err == nil {
		entry.FetchedAt = t
	}
	return entry, nil
}
