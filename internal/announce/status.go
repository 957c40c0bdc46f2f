package announce

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Status captures everything needed to describe the widget to a screen reader.
type Status struct {
	QueryLength int
	MinLength   int
	Count       int
	// Selected is the label of the highlighted option; empty when none.
	Selected      string
	SelectedIndex int
	Silenced      bool
}

// Messages holds the user-facing status templates.
type Messages struct {
	QueryTooShort  func(minLength int) string
	NoResults      func() string
	SelectedOption func(label string, count, index int) string
	Results        func(count int, selected string) string
}

// DefaultMessages returns the English status templates.
func DefaultMessages() Messages {
	return Messages{
		QueryTooShort: func(minLength int) string {
			return fmt.Sprintf("Type in %d or more characters for results", minLength)
		},
		NoResults: func() string {
			return "No search results"
		},
		SelectedOption: func(label string, count, index int) string {
			return fmt.Sprintf("%s %s of %s is highlighted", label, humanize.Comma(int64(index+1)), humanize.Comma(int64(count)))
		},
		Results: func(count int, selected string) string {
			noun, verb := "results", "are"
			if count == 1 {
				noun, verb = "result", "is"
			}
			return strings.TrimSpace(fmt.Sprintf("%s %s %s available. %s", humanize.Comma(int64(count)), noun, verb, selected))
		},
	}
}

// Compose renders the status text. Missing templates fall back to the defaults.
func (m Messages) Compose(s Status) string {
	if s.Silenced {
		return ""
	}
	d := DefaultMessages()
	if m.QueryTooShort == nil {
		m.QueryTooShort = d.QueryTooShort
	}
	if m.NoResults == nil {
		m.NoResults = d.NoResults
	}
	if m.SelectedOption == nil {
		m.SelectedOption = d.SelectedOption
	}
	if m.Results == nil {
		m.Results = d.Results
	}
	if s.QueryLength < s.MinLength {
		return m.QueryTooShort(s.MinLength)
	}
	if s.Count == 0 {
		return m.NoResults()
	}
	selected := ""
	if s.Selected != "" {
		selected = m.SelectedOption(s.Selected, s.Count, s.SelectedIndex)
	}
	return m.Results(s.Count, selected)
}

// Compose renders s with the default templates.
func Compose(s Status) string {
	return DefaultMessages().Compose(s)
}
