package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/accessible-autocomplete/internal/logging/events"
	uistate "github.com/atomicstack/accessible-autocomplete/internal/ui/state"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return m.quit(true)
	}

	var cmds []tea.Cmd
	if m.combo.Focus == uistate.FocusNone {
		// A keypress means the terminal has focus again.
		if cmd := m.applyChange(m.combo.FocusInput()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	before := m.combo.QueryCursorPos()
	handled, cmd := m.handleNavigationKey(keyMsg)
	if !handled {
		handled, cmd = m.handleTextInput(keyMsg)
	}
	if handled && cmd != nil {
		cmds = append(cmds, cmd)
	}
	if before != m.combo.QueryCursorPos() {
		m.cursorDirty = true
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleNavigationKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	c := m.combo
	var ch uistate.Change
	switch {
	case key.Matches(msg, m.keys.Up):
		ch = c.ArrowUp()
	case key.Matches(msg, m.keys.Down):
		ch = c.ArrowDown()
	case key.Matches(msg, m.keys.PageUp):
		ch = c.PageUp(m.maxVisibleOptions())
	case key.Matches(msg, m.keys.PageDown):
		ch = c.PageDown(m.maxVisibleOptions())
	case key.Matches(msg, m.keys.Confirm):
		ch = c.Enter()
		if !ch.Handled {
			return true, m.submit()
		}
	case key.Matches(msg, m.keys.Select) || msg.Type == tea.KeySpace:
		ch = c.Space()
		if ch.Handled && ch.Confirmed == nil {
			events.Input.Type(m.id, c.Query, ch.Redirected)
		}
	case key.Matches(msg, m.keys.Close):
		ch = c.Escape()
		if !ch.Handled {
			return true, m.quit(true)
		}
		events.Selection.Close(m.id)
	case key.Matches(msg, m.keys.Blur):
		ch = c.Blur()
		events.Selection.Focus(m.id, false)
	default:
		return false, nil
	}
	if !ch.Handled {
		return false, nil
	}
	return true, m.applyChange(ch)
}

// submit accepts the current input as the final value.
func (m *Model) submit() tea.Cmd {
	m.result = Result{Value: m.combo.Query}
	if m.confirmed != nil && m.combo.InputValue(*m.confirmed) == m.combo.Query {
		item := *m.confirmed
		m.result.Item = &item
	}
	events.App.Exit(m.result.Value, m.result.Item != nil)
	return tea.Quit
}

func (m *Model) quit(cancelled bool) tea.Cmd {
	m.result = Result{Value: m.combo.Query, Cancelled: cancelled}
	events.App.Exit(m.result.Value, false)
	return tea.Quit
}

func (m *Model) handleFocusMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.FocusMsg); !ok {
		return nil
	}
	ch := m.combo.FocusInput()
	if !ch.Handled {
		return nil
	}
	events.Selection.Focus(m.id, true)
	return m.applyChange(ch)
}

func (m *Model) handleBlurMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.BlurMsg); !ok {
		return nil
	}
	ch := m.combo.Blur()
	if !ch.Handled {
		return nil
	}
	events.Selection.Focus(m.id, false)
	return m.applyChange(ch)
}
