package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/accessible-autocomplete/internal/announce"
	"github.com/atomicstack/accessible-autocomplete/internal/logging/events"
	"github.com/atomicstack/accessible-autocomplete/internal/ui/command"
	uistate "github.com/atomicstack/accessible-autocomplete/internal/ui/state"
)

// statusTickMsg fires when the status debounce window for seq closes.
type statusTickMsg struct {
	seq int
}

// applyChange turns the outcome of a state machine operation into commands.
func (m *Model) applyChange(ch uistate.Change) tea.Cmd {
	if ch.Moved {
		m.combo.EnsureHighlightVisible(m.maxVisibleOptions())
		events.Selection.Move(m.id, m.combo.Highlight, m.combo.Phase().String())
	}
	if ch.Confirmed != nil {
		item := *ch.Confirmed
		m.confirmed = &item
		events.Selection.Confirm(m.id, item.Value, item.Label)
	}
	if ch.Lookup != nil {
		return m.lookupCmd(*ch.Lookup)
	}
	if !m.combo.Pending() {
		m.bus.Cancel()
	}
	return nil
}

func (m *Model) lookupCmd(l uistate.Lookup) tea.Cmd {
	return m.bus.Lookup(m.ctx, m.source, command.Request{Seq: l.Seq, Query: l.Query})
}

func (m *Model) handleLookupResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.LookupResult)
	if !ok {
		return nil
	}
	if !m.combo.ApplyResults(res.Seq, res.Items, res.Err) {
		events.Lookup.Stale(res.Seq, res.Query)
		return nil
	}
	m.combo.EnsureHighlightVisible(m.maxVisibleOptions())
	return nil
}

// scheduleStatus starts a new debounce window. Only the newest window is
// announced; earlier ticks are ignored when they fire.
func (m *Model) scheduleStatus() tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	events.Announce.Schedule(m.id, seq, m.statusDelay.Milliseconds())
	if m.statusDelay <= 0 {
		return func() tea.Msg { return statusTickMsg{seq: seq} }
	}
	return tea.Tick(m.statusDelay, func(time.Time) tea.Msg {
		return statusTickMsg{seq: seq}
	})
}

func (m *Model) handleStatusTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(statusTickMsg)
	if !ok || tick.seq != m.statusSeq {
		return nil
	}
	text := m.combo.StatusText()
	slot := m.announcer.Announce(text)
	events.Announce.Write(announce.RegionID(m.id, slot), text)
	return nil
}
