// Package cache persists list-level copies of upstream collections. The
// cache is the fallback read path: when an upstream detail call fails, the
// last fetched list copy of the record is served instead, and public
// storefront pages can still render for anonymous visitors after the
// upstream starts rejecting the token.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when the cache has no copy of the requested record.
var ErrMiss = errors.New("cache miss")

// Entry is one cached record: the raw upstream JSON for a single list
// element, keyed by section and record id.
type Entry struct {
	Section   string
	RecordID  string
	Payload   []byte
	FetchedAt time.Time
}

// Store persists cached upstream collections.
type Store interface {
	// ReplaceSection atomically replaces a section's cached records with a
	// freshly fetched list copy.
	ReplaceSection(ctx context.Context, section string, entries []Entry) error
	// Get returns the cached copy of one record, or ErrMiss.
	Get(ctx context.Context, section, recordID string) (Entry, error)
	// List returns all cached records for a section in insertion order.
	List(ctx context.Context, section string) ([]Entry, error)
	// RefreshedAt returns when the section was last replaced, or the zero
	// time if never.
	RefreshedAt(ctx context.Context, section string) (time.Time, error)
	// Clear drops a section's cached records.
	Clear(ctx context.Context, section string) error
}
