package dispatcher

import (
	"github.com/atomicstack/accessible-autocomplete/internal/backend"
	"github.com/atomicstack/accessible-autocomplete/internal/logging/events"
	"github.com/atomicstack/accessible-autocomplete/internal/state"
)

type Result struct {
	CatalogueUpdated bool
}

type Dispatcher struct {
	catalogue state.CatalogueStore
}

func New(c state.CatalogueStore) *Dispatcher {
	return &Dispatcher{catalogue: c}
}

// Handle applies a backend event to the stores. Failed reloads keep the
// previous catalogue.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		events.Catalogue.Error(evt.Path, evt.Err)
		return res
	}
	switch evt.Kind {
	case backend.KindCatalogue:
		d.catalogue.SetEntries(evt.Items)
		events.Catalogue.Reload(evt.Path, len(evt.Items))
		res.CatalogueUpdated = true
	}
	return res
}
