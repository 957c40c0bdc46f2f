package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/accessible-autocomplete/internal/backend"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent stores a reloaded catalogue and re-runs the lookup for
// the current query so the visible options reflect it.
func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if evt.Err != nil {
		m.backendErr = evt.Err.Error()
	} else {
		m.backendErr = ""
	}
	if m.dispatcher == nil {
		return nil
	}
	res := m.dispatcher.Handle(evt)
	if !res.CatalogueUpdated {
		return nil
	}
	return m.applyChange(m.combo.Refresh())
}
