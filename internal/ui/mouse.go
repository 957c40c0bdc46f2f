package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/accessible-autocomplete/internal/logging/events"
	uistate "github.com/atomicstack/accessible-autocomplete/internal/ui/state"
)

type rowKind int

const (
	rowOther rowKind = iota
	rowInput
	rowOption
)

// rowTarget records what a rendered row belongs to, so pointer events can be
// resolved to the owning element.
type rowTarget struct {
	kind   rowKind
	option int
}

func (m *Model) targetAt(y int) rowTarget {
	if y < 0 || y >= len(m.rows) {
		return rowTarget{kind: rowOther, option: -1}
	}
	return m.rows[y]
}

// handleMouseMsg maps pointer events onto the state machine. A press on any
// row of an option confirms that option; motion hovers; a press elsewhere
// blurs the widget.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	target := m.targetAt(ev.Y)
	switch {
	case ev.Button == tea.MouseButtonWheelUp:
		return m.applyChange(m.combo.ArrowUp())
	case ev.Button == tea.MouseButtonWheelDown:
		return m.applyChange(m.combo.ArrowDown())
	case ev.Action == tea.MouseActionMotion:
		index := -1
		if target.kind == rowOption {
			index = target.option
		}
		ch := m.combo.Hover(index)
		if ch.Moved {
			events.Selection.Hover(m.id, index)
		}
		return m.applyChange(ch)
	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
		return m.handleClick(target)
	}
	return nil
}

func (m *Model) handleClick(target rowTarget) tea.Cmd {
	switch target.kind {
	case rowOption:
		var cmds []tea.Cmd
		if m.combo.Focus == uistate.FocusNone {
			cmds = append(cmds, m.applyChange(m.combo.FocusInput()))
		}
		cmds = append(cmds, m.applyChange(m.combo.Click(target.option)))
		m.cursorDirty = true
		return tea.Batch(cmds...)
	case rowInput:
		ch := m.combo.FocusInput()
		if !ch.Handled {
			return nil
		}
		events.Selection.Focus(m.id, true)
		return m.applyChange(ch)
	default:
		ch := m.combo.Blur()
		if !ch.Handled {
			return nil
		}
		events.Selection.Focus(m.id, false)
		return m.applyChange(ch)
	}
}
