package state

import "unicode"

// queryChanged resets the highlight and decides whether a lookup is needed.
func (c *Combobox) queryChanged() Change {
	c.Highlight = -1
	c.Hovered = -1
	c.ViewportOffset = 0
	c.ValidChoiceMade = false
	c.lookedUp = false
	c.dismissed = false
	c.stale = false
	if (c.Query != "" && c.queryLongEnough()) || c.opts.ShowAllValues {
		return c.changed(Change{Handled: true, Lookup: c.issueLookup(c.Query)})
	}
	c.cancelLookup()
	c.Items = nil
	c.Open = false
	return c.changed(Change{Handled: true})
}

// setQuery replaces the query and moves the cursor to its end.
func (c *Combobox) setQuery(query string) {
	c.Query = query
	c.QueryCursor = len([]rune(query))
}

// takeFocusFromOption returns focus to the input, with the cursor at the end
// of the query. It reports whether an option held focus.
func (c *Combobox) takeFocusFromOption() bool {
	if c.Focus != FocusOption {
		if c.Focus == FocusNone {
			c.Focus = FocusInput
		}
		return false
	}
	c.Focus = FocusInput
	c.QueryCursor = len([]rune(c.Query))
	return true
}

// SetQuery replaces the query programmatically.
func (c *Combobox) SetQuery(query string) Change {
	if query == c.Query {
		return Change{}
	}
	c.setQuery(query)
	return c.queryChanged()
}

// Clear empties the query.
func (c *Combobox) Clear() Change {
	c.takeFocusFromOption()
	if c.Query == "" {
		return Change{}
	}
	c.setQuery("")
	return c.queryChanged()
}

// QueryCursorPos returns the rune offset of the query cursor.
func (c *Combobox) QueryCursorPos() int {
	runes := []rune(c.Query)
	if c.QueryCursor < 0 {
		return 0
	}
	if c.QueryCursor > len(runes) {
		return len(runes)
	}
	return c.QueryCursor
}

// Type inserts text at the cursor. A keypress while an option holds focus is
// redirected to the end of the query and focus returns to the input.
func (c *Combobox) Type(text string) Change {
	insert := []rune(text)
	if len(insert) == 0 {
		return Change{}
	}
	redirected := c.takeFocusFromOption()
	runes := []rune(c.Query)
	pos := c.QueryCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	c.Query = string(updated)
	c.QueryCursor = pos + len(insert)
	ch := c.queryChanged()
	ch.Redirected = redirected
	return ch
}

// Backspace deletes the rune before the cursor.
func (c *Combobox) Backspace() Change {
	redirected := c.takeFocusFromOption()
	runes := []rune(c.Query)
	pos := c.QueryCursorPos()
	if pos == 0 || len(runes) == 0 {
		if redirected {
			return c.changed(Change{Handled: true, Redirected: true})
		}
		return Change{}
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	c.Query = string(updated)
	c.QueryCursor = pos - 1
	ch := c.queryChanged()
	ch.Redirected = redirected
	return ch
}

// DeleteWord deletes the word preceding the cursor.
func (c *Combobox) DeleteWord() Change {
	redirected := c.takeFocusFromOption()
	runes := []rune(c.Query)
	pos := c.QueryCursorPos()
	if pos == 0 || len(runes) == 0 {
		return Change{}
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	c.Query = string(updated)
	c.QueryCursor = i
	ch := c.queryChanged()
	ch.Redirected = redirected
	return ch
}

// MoveCursorStart moves the query cursor to the start.
func (c *Combobox) MoveCursorStart() bool {
	if c.Focus == FocusOption || c.QueryCursorPos() == 0 {
		return false
	}
	c.QueryCursor = 0
	c.render()
	return true
}

// MoveCursorEnd moves the query cursor to the end.
func (c *Combobox) MoveCursorEnd() bool {
	end := len([]rune(c.Query))
	if c.Focus == FocusOption || c.QueryCursorPos() == end {
		return false
	}
	c.QueryCursor = end
	c.render()
	return true
}

// MoveCursorWordBackward moves the query cursor one word backward.
func (c *Combobox) MoveCursorWordBackward() bool {
	runes := []rune(c.Query)
	pos := c.QueryCursorPos()
	if c.Focus == FocusOption || pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	if i == pos {
		return false
	}
	c.QueryCursor = i
	c.render()
	return true
}

// MoveCursorWordForward moves the query cursor one word forward.
func (c *Combobox) MoveCursorWordForward() bool {
	runes := []rune(c.Query)
	pos := c.QueryCursorPos()
	if c.Focus == FocusOption || pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	c.QueryCursor = i
	c.render()
	return true
}

// MoveCursorLeft moves the query cursor one rune backward.
func (c *Combobox) MoveCursorLeft() bool {
	if c.Focus == FocusOption || c.QueryCursorPos() == 0 {
		return false
	}
	c.QueryCursor = c.QueryCursorPos() - 1
	c.render()
	return true
}

// MoveCursorRight moves the query cursor one rune forward.
func (c *Combobox) MoveCursorRight() bool {
	pos := c.QueryCursorPos()
	if c.Focus == FocusOption || pos >= len([]rune(c.Query)) {
		return false
	}
	c.QueryCursor = pos + 1
	c.render()
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
