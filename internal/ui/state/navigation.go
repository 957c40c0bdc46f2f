package state

// ArrowDown moves the highlight towards the end of the list. From the input it
// highlights the first option; on the last option it stays put. With
// ShowAllValues a closed menu is opened with every value instead.
func (c *Combobox) ArrowDown() Change {
	if !c.Open {
		if c.opts.ShowAllValues && c.Focus != FocusNone {
			c.dismissed = false
			return c.changed(Change{Handled: true, Lookup: c.issueLookup("")})
		}
		return Change{}
	}
	n := len(c.Items)
	if n == 0 {
		return Change{}
	}
	old := c.Highlight
	if c.Highlight < n-1 {
		c.Highlight++
	}
	c.Hovered = -1
	c.Focus = FocusOption
	return c.changed(Change{Handled: true, Moved: old != c.Highlight})
}

// ArrowUp moves the highlight towards the start of the list. From the first
// option the highlight is dropped and focus returns to the input.
func (c *Combobox) ArrowUp() Change {
	if !c.Open {
		return Change{}
	}
	if c.Highlight < 0 {
		return Change{Handled: true}
	}
	if c.Highlight == 0 {
		c.Highlight = -1
		c.Focus = FocusInput
	} else {
		c.Highlight--
		c.Focus = FocusOption
	}
	c.Hovered = -1
	return c.changed(Change{Handled: true, Moved: true})
}

// PageDown moves the highlight down by the given page size without wrapping.
func (c *Combobox) PageDown(maxVisible int) Change {
	return c.moveHighlightBy(c.pageSize(maxVisible))
}

// PageUp moves the highlight up by the given page size. Moving past the first
// option leaves the highlight on it; use ArrowUp to return to the input.
func (c *Combobox) PageUp(maxVisible int) Change {
	return c.moveHighlightBy(-c.pageSize(maxVisible))
}

func (c *Combobox) moveHighlightBy(delta int) Change {
	if !c.Open || len(c.Items) == 0 || delta == 0 {
		return Change{}
	}
	old := c.Highlight
	next := c.Highlight + delta
	if c.Highlight < 0 && delta > 0 {
		next = delta - 1
	}
	if next < 0 {
		next = 0
	}
	if next >= len(c.Items) {
		next = len(c.Items) - 1
	}
	c.Highlight = next
	c.Hovered = -1
	c.Focus = FocusOption
	return c.changed(Change{Handled: true, Moved: old != c.Highlight})
}

func (c *Combobox) pageSize(maxVisible int) int {
	total := len(c.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// Enter confirms the highlighted option. On an open menu without a highlight
// the key is swallowed; on a closed menu it is left to the adapter.
func (c *Combobox) Enter() Change {
	if !c.Open {
		return Change{}
	}
	if c.Highlight < 0 {
		return Change{Handled: true}
	}
	return c.confirm(c.Highlight)
}

// Space confirms the option holding focus. Anywhere else it types a space.
func (c *Combobox) Space() Change {
	if c.Focus == FocusOption && c.Open && c.Highlight >= 0 {
		return c.confirm(c.Highlight)
	}
	return c.Type(" ")
}

// Escape closes the menu, keeping the query.
func (c *Combobox) Escape() Change {
	if !c.Expanded() {
		return Change{}
	}
	c.close()
	return c.changed(Change{Handled: true})
}

// Click highlights and confirms the option at index. Adapters resolve clicks
// on nested parts of an option to the option's index before calling Click.
func (c *Combobox) Click(index int) Change {
	if !c.Open || index < 0 || index >= len(c.Items) {
		return Change{}
	}
	c.Highlight = index
	return c.confirm(index)
}

// Hover records the option under the pointer; -1 clears it. Hovering never
// moves the highlight.
func (c *Combobox) Hover(index int) Change {
	if !c.Open || index >= len(c.Items) {
		index = -1
	}
	if index < -1 {
		index = -1
	}
	if index == c.Hovered {
		return Change{}
	}
	c.Hovered = index
	return c.changed(Change{Handled: true, Moved: true})
}

// EnsureHighlightVisible adjusts the viewport offset so the highlight stays visible.
func (c *Combobox) EnsureHighlightVisible(maxVisible int) {
	if len(c.Items) == 0 {
		c.Highlight = -1
		c.ViewportOffset = 0
		return
	}
	if c.Highlight >= len(c.Items) {
		c.Highlight = len(c.Items) - 1
	}
	if maxVisible <= 0 {
		c.ViewportOffset = 0
		return
	}
	maxOffset := len(c.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if c.ViewportOffset > maxOffset {
		c.ViewportOffset = maxOffset
	}
	if c.ViewportOffset < 0 {
		c.ViewportOffset = 0
	}
	if c.Highlight < 0 {
		return
	}
	if c.Highlight < c.ViewportOffset {
		c.ViewportOffset = c.Highlight
	}
	upper := c.ViewportOffset + maxVisible - 1
	if c.Highlight > upper {
		c.ViewportOffset = c.Highlight - maxVisible + 1
		if c.ViewportOffset < 0 {
			c.ViewportOffset = 0
		}
		if c.ViewportOffset > maxOffset {
			c.ViewportOffset = maxOffset
		}
	}
}
