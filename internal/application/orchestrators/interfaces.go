// Package orchestrators contains write-side use cases. Every mutation
// validates client-side first so obviously bad input never leaves the
// process, then posts to the upstream service, then refreshes the local
// cache copy of the affected collection.
package orchestrators

import (
	"context"

	"fitfront/internal/adapters/storage/cache"
	"fitfront/internal/adapters/upstream"
)

// Mutator is the upstream write surface orchestrators need.
type Mutator interface {
	Mutate(ctx context.Context, token, method, url string, body any) (upstream.MutationResult, error)
	Endpoints() upstream.Endpoints
}

// Lister re-fetches a collection after a mutation.
type Lister interface {
	FetchList(ctx context.Context, token, url string) ([]map[string]any, error)
}

// CacheStore is the cache write surface used when refreshing after a
// mutation.
type CacheStore interface {
	ReplaceSection(ctx context.Context, section string, entries []cache.Entry) error
	Clear(ctx context.Context, section string) error
}

// ErrUpstreamRejected reports a mutation the upstream accepted at the HTTP
// level but reported as failed in its status envelope.
var ErrUpstreamRejected = upstream.ErrRejected

// mutationError turns an envelope-level failure into an error.
func mutationError(result upstream.MutationResult) error {
	return result.Err()
}
