package suggest

import (
	"context"

	"golang.org/x/sync/singleflight"
)

type deduped struct {
	source Source
	group  singleflight.Group
}

// Dedupe wraps a source so that concurrent lookups for the same query share a
// single call. The shared call runs detached from any one caller's
// cancellation; each caller stops waiting when its own context ends.
func Dedupe(source Source) Source {
	return &deduped{source: source}
}

func (d *deduped) Lookup(ctx context.Context, query string) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	shared := context.WithoutCancel(ctx)
	ch := d.group.DoChan(query, func() (interface{}, error) {
		return d.source.Lookup(shared, query)
	})
	select {
	case res := <-ch:
		items, _ := res.Val.([]Item)
		return CloneItems(items), res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
