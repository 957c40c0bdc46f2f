package events

import "github.com/atomicstack/accessible-autocomplete/internal/logging"

type InputTracer struct{}

type SelectionTracer struct{}

type LookupTracer struct{}

var (
	Input     = InputTracer{}
	Selection = SelectionTracer{}
	Lookup    = LookupTracer{}
)

func (InputTracer) Type(widgetID, query string, redirected bool) {
	logging.Trace("input.type", map[string]interface{}{"widget": widgetID, "query": query, "redirected": redirected})
}

func (InputTracer) Backspace(widgetID, query string) {
	logging.Trace("input.backspace", map[string]interface{}{"widget": widgetID, "query": query})
}

func (InputTracer) WordBackspace(widgetID, query string) {
	logging.Trace("input.word-backspace", map[string]interface{}{"widget": widgetID, "query": query})
}

func (InputTracer) Cleared(widgetID string) {
	logging.Trace("input.clear", map[string]interface{}{"widget": widgetID})
}

func (InputTracer) Cursor(widgetID string, pos int) {
	logging.Trace("input.cursor", map[string]interface{}{"widget": widgetID, "cursor": pos})
}

func (SelectionTracer) Move(widgetID string, highlight int, phase string) {
	logging.Trace("selection.move", map[string]interface{}{"widget": widgetID, "highlight": highlight, "phase": phase})
}

func (SelectionTracer) Hover(widgetID string, index int) {
	logging.Trace("selection.hover", map[string]interface{}{"widget": widgetID, "index": index})
}

func (SelectionTracer) Confirm(widgetID, value, label string) {
	logging.Trace("selection.confirm", map[string]interface{}{"widget": widgetID, "value": value, "label": label})
}

func (SelectionTracer) Close(widgetID string) {
	logging.Trace("selection.close", map[string]interface{}{"widget": widgetID})
}

func (SelectionTracer) Focus(widgetID string, focused bool) {
	logging.Trace("selection.focus", map[string]interface{}{"widget": widgetID, "focused": focused})
}

func (LookupTracer) Queue(seq int, query string) {
	logging.Trace("lookup.queue", map[string]interface{}{"seq": seq, "query": query})
}

func (LookupTracer) Result(seq int, query string, count int) {
	logging.Trace("lookup.result", map[string]interface{}{"seq": seq, "query": query, "count": count})
}

func (LookupTracer) Stale(seq int, query string) {
	logging.Trace("lookup.stale", map[string]interface{}{"seq": seq, "query": query})
}

func (LookupTracer) Error(seq int, err error) {
	if err == nil {
		return
	}
	logging.Trace("lookup.error", map[string]interface{}{"seq": seq, "error": err.Error()})
}
