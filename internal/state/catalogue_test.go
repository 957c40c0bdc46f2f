package state

import (
	"testing"

	"github.com/atomicstack/accessible-autocomplete/internal/suggest"
)

func TestCatalogueStoreCopiesEntries(t *testing.T) {
	items := suggest.Labels("France", "Italy")
	store := NewCatalogueStore(items)
	items[0].Label = "mutated"

	got := store.Entries()
	if got[0].Label != "France" {
		t.Fatalf("expected store to own its entries, got %q", got[0].Label)
	}
	got[1].Label = "mutated"
	if store.Entries()[1].Label != "Italy" {
		t.Fatalf("expected returned entries to be a copy")
	}
	if store.Version() != 0 {
		t.Fatalf("expected version 0, got %d", store.Version())
	}

	store.SetEntries(suggest.Labels("Spain"))
	if len(store.Entries()) != 1 || store.Version() != 1 {
		t.Fatalf("unexpected store state %v/%d", store.Entries(), store.Version())
	}
}

func TestCatalogueStoreSatisfiesCatalogue(t *testing.T) {
	var _ suggest.Catalogue = NewCatalogueStore(nil)
}
