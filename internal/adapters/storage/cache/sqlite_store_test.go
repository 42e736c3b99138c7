package cache

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"fitfront/internal/adapters/storage"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReplaceSectionAndList(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	first := []Entry{
		{Section: "orders", RecordID: "1", Payload: []byte(`{"id":1}`)},
		{Section: "orders", RecordID: "2", Payload: []byte(`{"id":2}`)},
	}
	if err := store.ReplaceSection(ctx, "orders", first); err != nil {
		t.Fatalf("ReplaceSection: %v", err)
	}

	// Replacing again must drop records no longer present upstream.
	second := []Entry{{Section: "orders", RecordID: "3", Payload: []byte(`{"id":3}`)}}
	if err := store.ReplaceSection(ctx, "orders", second); err != nil {
		t.Fatalf("ReplaceSection: %v", err)
	}

	entries, err := store.List(ctx, "orders")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].RecordID != "3" {
		t.Fatalf("List = %+v, want single record 3", entries)
	}

	refreshed, err := store.RefreshedAt(ctx, "orders")
	if err != nil {
		t.Fatalf("RefreshedAt: %v", err)
	}
	if refreshed.IsZero() {
		t.Error("RefreshedAt should be set after replace")
	}
}

func TestGetMissAndHit(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	if _, err := store.Get(ctx, "orders", "42"); err != ErrMiss {
		t.Errorf("Get on empty cache = %v, want ErrMiss", err)
	}

	payload := []byte(`{"id":42,"total_price":99}`)
	err := store.ReplaceSection(ctx, "orders", []Entry{{Section: "orders", RecordID: "42", Payload: payload}})
	if err != nil {
		t.Fatalf("ReplaceSection: %v", err)
	}

	entry, err := store.Get(ctx, "orders", "42")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(entry.Payload) != string(payload) {
		t.Errorf("Payload = %s, want %s", entry.Payload, payload)
	}
	if entry.FetchedAt.IsZero() {
		t.Error("FetchedAt should be populated")
	}
}

func TestSectionsAreIsolated(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	if err := store.ReplaceSection(ctx, "orders", []Entry{{Section: "orders", RecordID: "1", Payload: []byte(`{}`)}}); err != nil {
		t.Fatalf("ReplaceSection orders: %v", err)
	}
	if err := store.ReplaceSection(ctx, "training", []Entry{{Section: "training", RecordID: "1", Payload: []byte(`{}`)}}); err != nil {
		t.Fatalf("ReplaceSection training: %v", err)
	}
	if err := store.Clear(ctx, "orders"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	orders, _ := store.List(ctx, "orders")
	training, _ := store.List(ctx, "training")
	if len(orders) != 0 {
		t.Errorf("orders not cleared: %+v", orders)
	}
	if len(training) != 1 {
		t.Errorf("training affected by clearing orders: %+v", training)
	}
}
