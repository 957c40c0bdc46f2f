package state

import (
	"sync"

	"github.com/atomicstack/accessible-autocomplete/internal/suggest"
)

// CatalogueStore holds the items a static source filters. It is shared between
// the UI goroutine and lookups running in the background.
type CatalogueStore interface {
	Entries() []suggest.Item
	SetEntries([]suggest.Item)
	Version() int
}

type catalogueStore struct {
	mu      sync.RWMutex
	entries []suggest.Item
	version int
}

func NewCatalogueStore(entries []suggest.Item) CatalogueStore {
	return &catalogueStore{entries: suggest.CloneItems(entries)}
}

func (c *catalogueStore) Entries() []suggest.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return suggest.CloneItems(c.entries)
}

func (c *catalogueStore) SetEntries(entries []suggest.Item) {
	c.mu.Lock()
	c.entries = suggest.CloneItems(entries)
	c.version++
	c.mu.Unlock()
}

// Version counts the replacements applied since construction.
func (c *catalogueStore) Version() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}
