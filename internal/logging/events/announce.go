package events

import "github.com/atomicstack/accessible-autocomplete/internal/logging"

type AnnounceTracer struct{}

var Announce = AnnounceTracer{}

func (AnnounceTracer) Schedule(widgetID string, seq int, delayMillis int64) {
	logging.Trace("announce.schedule", map[string]interface{}{"widget": widgetID, "seq": seq, "delay_ms": delayMillis})
}

func (AnnounceTracer) Write(region, text string) {
	logging.Trace("announce.write", map[string]interface{}{"region": region, "text": text})
}
