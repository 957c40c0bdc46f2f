package testutil

import (
	"context"
	"sync"

	"github.com/atomicstack/accessible-autocomplete/internal/suggest"
)

type reply struct {
	items []suggest.Item
	err   error
}

// DeferredSource is a suggestion source whose lookups block until the test
// resolves them, which makes it possible to answer queries out of order.
type DeferredSource struct {
	mu      sync.Mutex
	waiters map[string]chan reply
	calls   []string
}

// NewDeferredSource returns an empty DeferredSource.
func NewDeferredSource() *DeferredSource {
	return &DeferredSource{waiters: make(map[string]chan reply)}
}

// Lookup implements suggest.Source.
func (d *DeferredSource) Lookup(ctx context.Context, query string) ([]suggest.Item, error) {
	d.mu.Lock()
	d.calls = append(d.calls, query)
	d.mu.Unlock()
	select {
	case r := <-d.waiter(query):
		return r.items, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Resolve answers the next lookup for query. It may be called before the
// lookup starts.
func (d *DeferredSource) Resolve(query string, items []suggest.Item, err error) {
	d.waiter(query) <- reply{items: items, err: err}
}

// Calls returns the queries looked up so far.
func (d *DeferredSource) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.calls))
	copy(out, d.calls)
	return out
}

func (d *DeferredSource) waiter(query string) chan reply {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch, ok := d.waiters[query]
	if !ok {
		ch = make(chan reply, 1)
		d.waiters[query] = ch
	}
	return ch
}
