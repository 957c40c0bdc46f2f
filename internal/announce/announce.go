// Package announce publishes status text to a pair of live regions. Screen
// readers do not reliably re-read a region whose text did not change, so every
// announcement lands in the region that was not used last time and the other
// region is cleared.
package announce

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNoSink is returned when an announcer is built without somewhere to write.
var ErrNoSink = errors.New("announce: live region sink is required")

// Slot identifies one of the two live regions.
type Slot int

const (
	SlotA Slot = iota
	SlotB
)

// Other returns the opposite slot.
func (s Slot) Other() Slot {
	if s == SlotA {
		return SlotB
	}
	return SlotA
}

func (s Slot) String() string {
	if s == SlotB {
		return "B"
	}
	return "A"
}

// RegionID returns the identifier of the region for a widget, for example
// "autocomplete-default__status--A".
func RegionID(widgetID string, slot Slot) string {
	return fmt.Sprintf("%s__status--%s", widgetID, slot)
}

// Sink receives region writes.
type Sink interface {
	WriteRegion(slot Slot, text string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(slot Slot, text string)

// WriteRegion implements Sink.
func (f SinkFunc) WriteRegion(slot Slot, text string) {
	f(slot, text)
}

// Announcer alternates announcements between the two regions of a sink.
type Announcer struct {
	sink  Sink
	next  Slot
	last  Slot
	count int
}

// New builds an announcer. A nil sink, including a typed nil pointer, is a
// configuration error.
func New(sink Sink) (*Announcer, error) {
	if isNil(sink) {
		return nil, ErrNoSink
	}
	return &Announcer{sink: sink, next: SlotA, last: SlotB}, nil
}

// Announce writes text into the slot that was not used by the previous call
// and clears the other one. The target flips on every call, including calls
// that repeat the previous text.
func (a *Announcer) Announce(text string) Slot {
	target := a.next
	a.sink.WriteRegion(target, text)
	a.sink.WriteRegion(target.Other(), "")
	a.last = target
	a.next = target.Other()
	a.count++
	return target
}

// Last reports the slot written by the most recent announcement. Before the
// first announcement it reports SlotB so that Last().Other() is the first target.
func (a *Announcer) Last() Slot {
	return a.last
}

// Count reports how many announcements were made.
func (a *Announcer) Count() int {
	return a.count
}

func isNil(sink Sink) bool {
	if sink == nil {
		return true
	}
	v := reflect.ValueOf(sink)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
