package testutil

import (
	"sync"

	"github.com/atomicstack/accessible-autocomplete/internal/announce"
)

// Write is one region write observed by a RecordingSink.
type Write struct {
	Slot announce.Slot
	Text string
}

// RecordingSink records every region write. It is safe for concurrent use.
type RecordingSink struct {
	mu     sync.Mutex
	writes []Write
}

// WriteRegion implements announce.Sink.
func (s *RecordingSink) WriteRegion(slot announce.Slot, text string) {
	s.mu.Lock()
	s.writes = append(s.writes, Write{Slot: slot, Text: text})
	s.mu.Unlock()
}

// Writes returns a copy of every write so far.
func (s *RecordingSink) Writes() []Write {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Write, len(s.writes))
	copy(out, s.writes)
	return out
}

// Announcements returns only the non-empty writes, in order.
func (s *RecordingSink) Announcements() []Write {
	var out []Write
	for _, w := range s.Writes() {
		if w.Text != "" {
			out = append(out, w)
		}
	}
	return out
}
