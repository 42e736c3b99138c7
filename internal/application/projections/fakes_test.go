package projections

import (
	"context"
	"sync"
	"time"

	"fitfront/internal/adapters/storage/cache"
	"fitfront/internal/adapters/upstream"
)

// fakeFetcher serves canned payloads keyed by URL.
type fakeFetcher struct {
	mu        sync.Mutex
	endpoints upstream.Endpoints
	lists     map[string][]map[string]any
	ones      map[string]any
	errs      map[string]error
	calls     map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		endpoints: upstream.NewEndpoints("http://upstream.test"),
		lists:     make(map[string][]map[string]any),
		ones:      make(map[string]any),
		errs:      make(map[string]error),
		calls:     make(map[string]int),
	}
}

func (f *fakeFetcher) FetchList(_ context.Context, _, url string) ([]map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	return f.lists[url], nil
}

func (f *fakeFetcher) FetchOne(_ context.Context, _, url string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if payload, ok := f.ones[url]; ok {
		return payload, nil
	}
	return nil, upstream.ErrNotFound
}

func (f *fakeFetcher) Endpoints() upstream.Endpoints { return f.endpoints }

func (f *fakeFetcher) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

// fakeCache is an in-memory CacheStore.
type fakeCache struct {
	mu        sync.Mutex
	sections  map[string][]cache.Entry
	refreshed map[string]time.Time
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		sections:  make(map[string][]cache.Entry),
		refreshed: make(map[string]time.Time),
	}
}

func (c *fakeCache) ReplaceSection(_ context.Context, section string, entries []cache.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sections[section] = entries
	c.refreshed[section] = time.Now()
	return nil
}

func (c *fakeCache) Get(_ context.Context, section, recordID string) (cache.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.sections[section] {
		if e.RecordID == recordID {
			return e, nil
		}
	}
	return cache.Entry{}, cache.ErrMiss
}

func (c *fakeCache) List(_ context.Context, section string) ([]cache.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sections[section], nil
}

func (c *fakeCache) RefreshedAt(_ context.Context, section string) (time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshed[section], nil
}
