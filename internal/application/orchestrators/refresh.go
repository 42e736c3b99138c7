package orchestrators

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"fitfront/internal/adapters/storage/cache"
	"fitfront/internal/reconcile"
)

// refreshSection re-fetches a collection after a successful mutation and
// replaces its cached copy. The upstream has no per-record invalidation
// signal, so the whole section is refreshed each time. Failures are logged
// and swallowed: the mutation already succeeded, and the next page load
// re-fetches anyway.
func refreshSection(ctx context.Context, lister Lister, store CacheStore, token, url, section string) {
	if lister == nil || store == nil {
		return
	}
	raws, err := lister.FetchList(ctx, token, url)
	if err != nil {
		slog.Warn("cache_refresh_failed", "section", section, "error", err.Error())
		return
	}
	now := time.Now()
	entries := make([]cache.Entry, 0, len(raws))
	for _, raw := range raws {
		id := reconcile.StringAt(raw, "", "id", "_id", "product_id", "course_id", "order_id", "request_id", "blog_id", "service_id", "booking_id", "user_id", "admin_id")
		if id == "" {
			continue
		}
		payload, err := json.Marshal(raw)
		if err != nil {
			continue
		}
		entries = append(entries, cache.Entry{
			Section:   section,
			RecordID:  id,
			Payload:   payload,
			FetchedAt: now,
		})
	}
	if err := store.ReplaceSection(ctx, section, entries); err != nil {
		slog.Warn("cache_refresh_failed", "section", section, "error", err.Error())
	}
}
