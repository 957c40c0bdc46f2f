package ui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/accessible-autocomplete/internal/logging/events"
	uistate "github.com/atomicstack/accessible-autocomplete/internal/ui/state"
)

func (m *Model) updateCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.cursor, cmd = m.cursor.Update(msg)
	return cmd
}

// handleTextInput applies editing keys to the query.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	c := m.combo
	switch {
	case key.Matches(msg, m.keys.Clear):
		ch := c.Clear()
		if !ch.Handled {
			return false, nil
		}
		events.Input.Cleared(m.id)
		return true, m.applyChange(ch)
	case key.Matches(msg, m.keys.DeleteWord):
		ch := c.DeleteWord()
		if !ch.Handled {
			return false, nil
		}
		events.Input.WordBackspace(m.id, c.Query)
		return true, m.applyChange(ch)
	case key.Matches(msg, m.keys.Backspace):
		ch := c.Backspace()
		if !ch.Handled {
			return false, nil
		}
		events.Input.Backspace(m.id, c.Query)
		return true, m.applyChange(ch)
	case key.Matches(msg, m.keys.LineStart):
		return m.moveCursor(c.MoveCursorStart)
	case key.Matches(msg, m.keys.LineEnd):
		return m.moveCursor(c.MoveCursorEnd)
	case key.Matches(msg, m.keys.WordLeft):
		return m.moveCursor(c.MoveCursorWordBackward)
	case key.Matches(msg, m.keys.WordRight):
		return m.moveCursor(c.MoveCursorWordForward)
	case key.Matches(msg, m.keys.Left):
		return m.moveCursor(c.MoveCursorLeft)
	case key.Matches(msg, m.keys.Right):
		return m.moveCursor(c.MoveCursorRight)
	}
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) == 0 {
		return false, nil
	}
	for _, r := range msg.Runes {
		if unicode.IsControl(r) {
			return false, nil
		}
	}
	ch := c.Type(string(msg.Runes))
	if !ch.Handled {
		return false, nil
	}
	events.Input.Type(m.id, c.Query, ch.Redirected)
	return true, m.applyChange(ch)
}

func (m *Model) moveCursor(move func() bool) (bool, tea.Cmd) {
	if !move() {
		return false, nil
	}
	events.Input.Cursor(m.id, m.combo.QueryCursorPos())
	return true, nil
}

func (m *Model) inputPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.cursor.Style = styles.Cursor.Copy()
	}
	if styles.Input != nil {
		m.cursor.TextStyle = styles.Input.Copy()
	} else {
		m.cursor.TextStyle = lipgloss.Style{}
	}
	focused := m.snapshot.Focus == uistate.FocusInput
	prompt := "› "
	if focused && styles.InputPrompt != nil {
		prompt = styles.InputPrompt.Render(prompt)
	} else if !focused && styles.InputPromptBlurred != nil {
		prompt = styles.InputPromptBlurred.Render(prompt)
	}
	text := m.snapshot.Query
	if text == "" {
		runes := []rune(m.placeholder)
		if !focused {
			return prompt + render(styles.InputPlaceholder, m.placeholder)
		}
		var caretRune, rest string
		if len(runes) > 0 {
			caretRune = string(runes[0])
			rest = string(runes[1:])
		}
		if styles.InputPlaceholder != nil {
			m.cursor.TextStyle = styles.InputPlaceholder.Copy()
		}
		return prompt + m.renderCursor(caretRune) + render(styles.InputPlaceholder, rest)
	}
	if !focused {
		return prompt + render(styles.Input, text)
	}
	runes := []rune(text)
	pos := m.snapshot.QueryCursor
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	before := render(styles.Input, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Input, string(runes[pos+1:]))
	}
	return prompt + before + m.renderCursor(caretRune) + after
}

func (m *Model) renderCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.cursor.SetChar(char)

	base := m.cursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.cursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
