// Package suggest defines suggestion items and the sources that produce them.
// The widget treats a Source as an external collaborator: it may be slow,
// remote or failing, and the widget only ever applies the newest answer.
package suggest

import "context"

// Item is a single suggestion. Label is what the user sees and what is copied
// into the input on confirmation; Value is the opaque underlying value.
type Item struct {
	Value string `yaml:"value" toml:"value" json:"value"`
	Label string `yaml:"label" toml:"label" json:"label"`
	Hint  string `yaml:"hint,omitempty" toml:"hint,omitempty" json:"hint,omitempty"`
}

// Source produces suggestions for a query.
type Source interface {
	Lookup(ctx context.Context, query string) ([]Item, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, query string) ([]Item, error)

// Lookup implements Source.
func (f SourceFunc) Lookup(ctx context.Context, query string) ([]Item, error) {
	return f(ctx, query)
}

// Catalogue exposes the full set of items a static source filters.
type Catalogue interface {
	Entries() []Item
}

// Items is a fixed catalogue.
type Items []Item

// Entries implements Catalogue.
func (i Items) Entries() []Item {
	return CloneItems(i)
}

// Labels builds items whose value and label are the same string.
func Labels(labels ...string) Items {
	items := make(Items, len(labels))
	for i, label := range labels {
		items[i] = Item{Value: label, Label: label}
	}
	return items
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
