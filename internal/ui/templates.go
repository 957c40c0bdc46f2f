package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/atomicstack/accessible-autocomplete/internal/format/table"
	uistate "github.com/atomicstack/accessible-autocomplete/internal/ui/state"
)

// Template renders the visible options. It returns one entry per option, each
// holding the rows that option occupies on screen. Options may span several
// rows; clicks on any of them resolve to the owning option.
type Template interface {
	Render(query string, options []uistate.OptionView) [][]string
}

// TemplateFunc adapts a function to the Template interface.
type TemplateFunc func(query string, options []uistate.OptionView) [][]string

// Render implements Template.
func (f TemplateFunc) Render(query string, options []uistate.OptionView) [][]string {
	return f(query, options)
}

// DefaultTemplate renders each option on one row with its hint aligned in a
// second column.
func DefaultTemplate() Template {
	return TemplateFunc(func(_ string, options []uistate.OptionView) [][]string {
		rows := make([][]string, len(options))
		for i, opt := range options {
			rows[i] = []string{opt.Item.Label, opt.Item.Hint}
		}
		formatted := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
		out := make([][]string, len(formatted))
		for i, line := range formatted {
			out[i] = []string{line}
		}
		return out
	})
}

// HighlightTemplate emphasises the runes of each label that match the query
// and renders the hint on a nested second row.
func HighlightTemplate(match, hint *lipgloss.Style) Template {
	return TemplateFunc(func(query string, options []uistate.OptionView) [][]string {
		matched := matchedIndexes(query, options)
		out := make([][]string, len(options))
		for i, opt := range options {
			rows := []string{emphasise(opt.Item.Label, matched[i], match)}
			if opt.Item.Hint != "" {
				text := "  " + opt.Item.Hint
				if hint != nil {
					text = hint.Render(text)
				}
				rows = append(rows, text)
			}
			out[i] = rows
		}
		return out
	})
}

// TemplateByName resolves the template names accepted on the command line.
func TemplateByName(name string) (Template, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return DefaultTemplate(), nil
	case "highlight":
		return HighlightTemplate(styles.Match, styles.Hint), nil
	default:
		return nil, fmt.Errorf("unknown template %q", name)
	}
}

type optionLabels []uistate.OptionView

func (o optionLabels) String(i int) string {
	return o[i].Item.Label
}

func (o optionLabels) Len() int {
	return len(o)
}

// matchedIndexes returns, per option, the byte offsets of label runes matched
// by the query.
func matchedIndexes(query string, options []uistate.OptionView) []map[int]struct{} {
	out := make([]map[int]struct{}, len(options))
	if strings.TrimSpace(query) == "" {
		return out
	}
	for _, m := range fuzzy.FindFrom(query, optionLabels(options)) {
		set := make(map[int]struct{}, len(m.MatchedIndexes))
		for _, idx := range m.MatchedIndexes {
			set[idx] = struct{}{}
		}
		out[m.Index] = set
	}
	return out
}

func emphasise(label string, matched map[int]struct{}, style *lipgloss.Style) string {
	if len(matched) == 0 || style == nil {
		return label
	}
	var b strings.Builder
	for i, r := range label {
		if _, ok := matched[i]; ok {
			b.WriteString(style.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
