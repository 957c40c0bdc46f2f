package events

import "github.com/atomicstack/accessible-autocomplete/internal/logging"

type CatalogueTracer struct{}

var Catalogue = CatalogueTracer{}

func (CatalogueTracer) Watch(path string) {
	logging.Trace("catalogue.watch", map[string]interface{}{"path": path})
}

func (CatalogueTracer) Reload(path string, count int) {
	logging.Trace("catalogue.reload", map[string]interface{}{"path": path, "count": count})
}

func (CatalogueTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("catalogue.error", map[string]interface{}{"path": path, "error": err.Error()})
}
