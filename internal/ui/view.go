package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/accessible-autocomplete/internal/announce"
	"github.com/atomicstack/accessible-autocomplete/internal/format/table"
	uistate "github.com/atomicstack/accessible-autocomplete/internal/ui/state"
)

const (
	noOptionsText       = "No results found"
	pendingMarker       = "…"
	highlightIndicator  = "▌"
	hoverIndicator      = "▏"
	statusRegionDivider = "│ "
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model. It also records which element every row belongs
// to so mouse events can be resolved.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	rows := make([]rowTarget, 0, 16)
	add := func(line styledLine, target rowTarget) {
		lines = append(lines, line)
		rows = append(rows, target)
	}
	other := rowTarget{kind: rowOther, option: -1}

	snap := m.snapshot
	input := m.inputPrompt()
	if snap.Pending {
		marker := pendingMarker
		if styles.Pending != nil {
			marker = styles.Pending.Render(marker)
		}
		input += " " + marker
	}
	add(styledLine{text: input, raw: true}, rowTarget{kind: rowInput, option: -1})

	switch {
	case len(snap.Options) > 0:
		start, end := m.visibleRange(len(snap.Options))
		visible := snap.Options[start:end]
		rendered := m.template.Render(snap.Query, visible)
		perOption := 1
		for i, opt := range visible {
			var optRows []string
			if i < len(rendered) {
				optRows = rendered[i]
			}
			if len(optRows) == 0 {
				optRows = []string{opt.Item.Label}
			}
			if len(optRows) > perOption {
				perOption = len(optRows)
			}
			for _, text := range optRows {
				add(m.buildOptionLine(text, opt), rowTarget{kind: rowOption, option: opt.Index})
			}
		}
		m.rowsPerOption = perOption
	case snap.NoOptions:
		add(styledLine{text: noOptionsText, style: styles.NoOptions}, other)
	}

	if m.backendErr != "" {
		add(styledLine{text: "Catalogue reload failed: " + m.backendErr, style: styles.Error}, other)
	}

	add(styledLine{}, other)
	for _, slot := range []announce.Slot{announce.SlotA, announce.SlotB} {
		label := slot.String() + statusRegionDivider
		add(styledLine{
			text:          label + m.regions.Text(slot),
			style:         styles.Status,
			prefixStyle:   styles.StatusLabel,
			highlightFrom: len([]rune(label)),
		}, other)
	}

	if m.showFooter {
		add(styledLine{}, other)
		m.help.Width = m.width
		add(styledLine{text: m.help.View(m.keys), raw: true}, other)
	}

	lines = limitHeight(lines, m.height, m.width)
	if len(rows) > len(lines) {
		rows = rows[:len(lines)]
	}
	lines = applyWidth(lines, m.width)
	m.rows = rows
	return renderLines(lines)
}

// visibleRange returns the slice of options that fits the viewport.
func (m *Model) visibleRange(total int) (int, int) {
	maxVisible := m.maxVisibleOptions()
	m.combo.EnsureHighlightVisible(maxVisible)
	if maxVisible <= 0 || total <= maxVisible {
		return 0, total
	}
	start := m.combo.ViewportOffset
	if start < 0 {
		start = 0
	}
	if start+maxVisible > total {
		start = total - maxVisible
	}
	return start, start + maxVisible
}

func (m *Model) buildOptionLine(text string, opt uistate.OptionView) styledLine {
	indicator := " "
	lineStyle := styles.Option
	indicatorStyle := styles.OptionIndicator
	switch {
	case opt.Selected:
		indicator = highlightIndicator
		indicatorStyle = styles.HighlightIndicator
		lineStyle = styles.HighlightedOption
	case opt.Hovered:
		indicator = hoverIndicator
		lineStyle = styles.HoveredOption
	}
	fullText := indicator + " " + text
	if m.width > 0 {
		if pad := m.width - lipgloss.Width(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the indicator
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.combo.EnsureHighlightVisible(m.maxVisibleOptions())
	return nil
}

// maxVisibleOptions returns how many options fit, or -1 when the height is
// unknown.
func (m *Model) maxVisibleOptions() int {
	if m.height <= 0 {
		return -1
	}
	used := 4 // input, blank separator, two status regions
	if m.backendErr != "" {
		used++
	}
	if m.showFooter {
		used += 2
	}
	per := m.rowsPerOption
	if per < 1 {
		per = 1
	}
	remain := (m.height - used) / per
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText shortens text to width terminal cells, marking the cut with an
// ellipsis.
func truncateText(text string, width int) string {
	if width <= 0 || table.Width(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width-1), "…")
}
