package announce

import (
	"fmt"
	"io"
	"sync"
)

// Regions is an in-memory pair of live regions. Both start empty.
type Regions struct {
	mu   sync.Mutex
	text [2]string
}

// WriteRegion implements Sink.
func (r *Regions) WriteRegion(slot Slot, text string) {
	r.mu.Lock()
	r.text[slot] = text
	r.mu.Unlock()
}

// Text returns the current content of a region.
func (r *Regions) Text(slot Slot) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text[slot]
}

// Occupied returns the slot holding text, if any.
func (r *Regions) Occupied() (Slot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.text[SlotA] != "":
		return SlotA, true
	case r.text[SlotB] != "":
		return SlotB, true
	}
	return SlotA, false
}

// WriterSink writes non-empty announcements as "<region id>\t<text>" lines,
// which is convenient for piping into a speech tool through a FIFO.
type WriterSink struct {
	widgetID string

	mu  sync.Mutex
	w   io.Writer
	err error
}

// NewWriterSink returns a sink writing to w.
func NewWriterSink(widgetID string, w io.Writer) *WriterSink {
	return &WriterSink{widgetID: widgetID, w: w}
}

// WriteRegion implements Sink. Clears are not written.
func (s *WriterSink) WriteRegion(slot Slot, text string) {
	if text == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	if _, err := fmt.Fprintf(s.w, "%s\t%s\n", RegionID(s.widgetID, slot), text); err != nil {
		s.err = err
	}
}

// Err returns the first write error, after which the sink stops writing.
func (s *WriterSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// MultiSink fans writes out to several sinks in order. Nil entries are skipped.
type MultiSink []Sink

// WriteRegion implements Sink.
func (m MultiSink) WriteRegion(slot Slot, text string) {
	for _, sink := range m {
		if sink != nil {
			sink.WriteRegion(slot, text)
		}
	}
}
