// Package projections contains read-side queries. Each projection fetches
// from the upstream service, normalizes the payload, and falls back to the
// local cache when the upstream call fails, so pages keep rendering from the
// last known copy.
package projections

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"fitfront/internal/adapters/storage/cache"
	"fitfront/internal/adapters/upstream"
	"fitfront/internal/reconcile"
)

// Fetcher is the upstream read surface projections need.
type Fetcher interface {
	FetchList(ctx context.Context, token, url string) ([]map[string]any, error)
	FetchOne(ctx context.Context, token, url string) (any, error)
	Endpoints() upstream.Endpoints
}

// CacheStore is the local fallback store for fetched collections.
type CacheStore interface {
	ReplaceSection(ctx context.Context, section string, entries []cache.Entry) error
	Get(ctx context.Context, section, recordID string) (cache.Entry, error)
	List(ctx context.Context, section string) ([]cache.Entry, error)
	RefreshedAt(ctx context.Context, section string) (time.Time, error)
}

// Cache section names. Sections hold raw list copies keyed by record id.
const (
	cacheSectionProducts       = "products"
	cacheSectionCategories     = "categories"
	cacheSectionCourses        = "courses"
	cacheSectionServices       = "services"
	cacheSectionBlogs          = "blogs"
	cacheSectionBlogCategories = "blog_categories"
	cacheSectionOrders         = "orders"
	cacheSectionTraining       = "training_requests"
	cacheSectionCourseRequests = "course_requests"
)

// idCandidates are the record id paths used for cache keys across entities.
var idCandidates = []string{"id", "_id", "product_id", "course_id", "order_id", "request_id", "blog_id", "service_id", "booking_id", "user_id", "admin_id"}

// rawID extracts a cache key from a raw list element.
func rawID(raw reconcile.Raw) string {
	return reconcile.StringAt(raw, "", idCandidates...)
}

// storeSection writes a fetched list copy into the cache. Cache write
// failures are swallowed: the cache is an availability aid, never a reason
// to fail a page that already has fresh data.
func storeSection(ctx context.Context, store CacheStore, section string, raws []reconcile.Raw) {
	if store == nil {
		return
	}
	now := time.Now()
	entries := make([]cache.Entry, 0, len(raws))
	for _, raw := range raws {
		id := rawID(raw)
		if id == "" {
			// Rows without a usable identifier still get cached so the stale
			// fallback serves the full list. The synthetic key stays inside
			// the cache layer.
			id = "anon-" + uuid.NewString()
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
	_ = store.ReplaceSection(ctx, section, entries)
}

// cachedSection reads a section's raw list copy back out of the cache.
func cachedSection(ctx context.Context, store CacheStore, section string) ([]reconcile.Raw, bool) {
	if store == nil {
		return nil, false
	}
	entries, err := store.List(ctx, section)
	if err != nil || len(entries) == 0 {
		return nil, false
	}
	raws := make([]reconcile.Raw, 0, len(entries))
	for _, e := range entries {
		var raw reconcile.Raw
		if err := json.Unmarshal(e.Payload, &raw); err == nil {
			raws = append(raws, raw)
		}
	}
	return raws, len(raws) > 0
}

// cachedRecord reads one record's raw copy back out of the cache.
func cachedRecord(ctx context.Context, store CacheStore, section, id string) (reconcile.Raw, bool) {
	if store == nil {
		return nil, false
	}
	entry, err := store.Get(ctx, section, id)
	if err != nil {
		return nil, false
	}
	var raw reconcile.Raw
	if err := json.Unmarshal(entry.Payload, &raw); err != nil {
		return nil, false
	}
	return raw, true
}

// fetchListWithFallback fetches a collection and caches it, or serves the
// cached copy when the upstream call fails. The second return reports
// whether the data is stale (served from cache).
func fetchListWithFallback(ctx context.Context, fetcher Fetcher, store CacheStore, token, url, section string) ([]reconcile.Raw, bool, error) {
	raws, err := fetcher.FetchList(ctx, token, url)
	if err == nil {
		storeSection(ctx, store, section, raws)
		return raws, false, nil
	}
	if cached, ok := cachedSection(ctx, store, section); ok {
		return cached, true, nil
	}
	return nil, false, err
}
