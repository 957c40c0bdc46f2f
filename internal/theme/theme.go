package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Pending            *lipgloss.Style
	Option             *lipgloss.Style
	OptionIndicator    *lipgloss.Style
	HighlightIndicator *lipgloss.Style
	HighlightedOption  *lipgloss.Style
	HoveredOption      *lipgloss.Style
	Hint               *lipgloss.Style
	Match              *lipgloss.Style
	NoOptions          *lipgloss.Style
	Error              *lipgloss.Style
	Status             *lipgloss.Style
	StatusLabel        *lipgloss.Style
	Footer             *lipgloss.Style
	Input              *lipgloss.Style
	InputPrompt        *lipgloss.Style
	InputPromptBlurred *lipgloss.Style
	InputPlaceholder   *lipgloss.Style
	Cursor             *lipgloss.Style
}

var defaultStyles = Styles{
	Pending: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Option: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	OptionIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	HighlightIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	HighlightedOption: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	HoveredOption: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
	),
	Hint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	),
	Match: ptr(
		lipgloss.NewStyle().Bold(true).Underline(true),
	),
	NoOptions: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Italic(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	StatusLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Input: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	InputPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	InputPromptBlurred: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	InputPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Plain returns a style set without colours, used when the output is not a
// terminal and by golden tests.
func Plain() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Pending:            ptr(plain),
		Option:             ptr(plain),
		OptionIndicator:    ptr(plain),
		HighlightIndicator: ptr(plain),
		HighlightedOption:  ptr(plain),
		HoveredOption:      ptr(plain),
		Hint:               ptr(plain),
		Match:              ptr(plain),
		NoOptions:          ptr(plain),
		Error:              ptr(plain),
		Status:             ptr(plain),
		StatusLabel:        ptr(plain),
		Footer:             ptr(plain),
		Input:              ptr(plain),
		InputPrompt:        ptr(plain),
		InputPromptBlurred: ptr(plain),
		InputPlaceholder:   ptr(plain),
		Cursor:             ptr(plain),
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
