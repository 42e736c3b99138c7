package orchestrators

import (
	"context"
	"errors"
	"sync"

	"fitfront/internal/adapters/email"
	"fitfront/internal/adapters/storage/cache"
	"fitfront/internal/adapters/upstream"
)

// fakeMutator records mutation calls and serves canned results.
type fakeMutator struct {
	mu        sync.Mutex
	endpoints upstream.Endpoints
	calls     []mutationCall
	results   map[string]upstream.MutationResult
	errs      map[string]error
	ones      map[string]any
	lists     map[string][]map[string]any
}

type mutationCall struct {
	Method string
	URL    string
	Body   any
}

func newFakeMutator() *fakeMutator {
	return &fakeMutator{
		endpoints: upstream.NewEndpoints("http://upstream.test"),
		results:   make(map[string]upstream.MutationResult),
		errs:      make(map[string]error),
		ones:      make(map[string]any),
		lists:     make(map[string][]map[string]any),
	}
}

func (f *fakeMutator) Mutate(_ context.Context, _, method, url string, body any) (upstream.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, mutationCall{Method: method, URL: url, Body: body})
	if err, ok := f.errs[url]; ok {
		return upstream.MutationResult{}, err
	}
	if result, ok := f.results[url]; ok {
		return result, nil
	}
	return upstream.MutationResult{Status: "success"}, nil
}

func (f *fakeMutator) FetchOne(_ context.Context, _, url string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if payload, ok := f.ones[url]; ok {
		return payload, nil
	}
	return nil, upstream.ErrNotFound
}

func (f *fakeMutator) FetchList(_ context.Context, _, url string) ([]map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists[url], nil
}

func (f *fakeMutator) Endpoints() upstream.Endpoints { return f.endpoints }

func (f *fakeMutator) mutationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeMutator) lastCall() mutationCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return mutationCall{}
	}
	return f.calls[len(f.calls)-1]
}

// fakeCacheStore records section replacements.
type fakeCacheStore struct {
	mu       sync.Mutex
	replaced []string
}

func (c *fakeCacheStore) ReplaceSection(_ context.Context, section string, _ []cache.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaced = append(c.replaced, section)
	return nil
}

func (c *fakeCacheStore) Clear(_ context.Context, _ string) error { return nil }

func (c *fakeCacheStore) replacedSections() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.replaced...)
}

// fakeAuth serves canned login results.
type fakeAuth struct {
	result upstream.LoginResult
	err    error
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (upstream.LoginResult, error) {
	return f.result, f.err
}

// fakeSender records sent emails.
type fakeSender struct {
	mu   sync.Mutex
	sent []email.SendRequest
	err  error
}

func (f *fakeSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, req)
	if f.err != nil {
		return email.SendResult{}, f.err
	}
	return email.SendResult{MessageID: "m1"}, nil
}

func (f *fakeSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeCanceller records course request cancellations.
type fakeCanceller struct {
	mu        sync.Mutex
	cancelled []string
	err       error
}

func (f *fakeCanceller) CancelCourseRequest(_ context.Context, _, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, id)
	return f.err
}

var errUpstreamDown = errors.New("connection refused")
