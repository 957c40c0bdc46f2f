package state

import (
	"errors"
	"strings"

	"github.com/atomicstack/accessible-autocomplete/internal/announce"
	"github.com/atomicstack/accessible-autocomplete/internal/suggest"
)

var (
	// ErrNoSource is returned when a widget is mounted without a suggestion source.
	ErrNoSource = errors.New("no suggestion source configured")
	// ErrNoID is returned when a widget is mounted without an id.
	ErrNoID = errors.New("widget id is required")
)

// Phase is the coarse state of the suggestion menu.
type Phase int

const (
	// PhaseClosed means no menu is shown.
	PhaseClosed Phase = iota
	// PhaseIdle means the menu is open and the input holds the highlight.
	PhaseIdle
	// PhaseHighlighted means an option is highlighted.
	PhaseHighlighted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseHighlighted:
		return "highlighted"
	default:
		return "closed"
	}
}

// Focus records which element holds keyboard focus.
type Focus int

const (
	FocusNone Focus = iota
	FocusInput
	FocusOption
)

func (f Focus) String() string {
	switch f {
	case FocusInput:
		return "input"
	case FocusOption:
		return "option"
	default:
		return "none"
	}
}

// Options configures the behaviour of a Combobox.
type Options struct {
	// MinLength is the number of characters required before a lookup runs.
	MinLength int
	// Autoselect highlights the first option whenever results arrive.
	Autoselect bool
	// ConfirmOnBlur confirms the highlighted option when focus leaves the widget.
	ConfirmOnBlur bool
	// ShowNoOptionsFound shows a notice instead of closing when a lookup is empty.
	ShowNoOptionsFound bool
	// ShowAllValues makes ArrowDown on a closed menu list every value.
	ShowAllValues bool
	// InputValue maps a confirmed item to the text placed in the input.
	// Defaults to the item label.
	InputValue func(suggest.Item) string
	// Messages overrides the status templates.
	Messages announce.Messages
}

// Lookup asks the adapter to run the suggestion source. Results must be handed
// back through ApplyResults with the same sequence number.
type Lookup struct {
	Seq   int
	Query string
}

// Change reports the outcome of an operation.
type Change struct {
	// Handled is false when the operation did not apply in the current state,
	// leaving the adapter free to give the key another meaning.
	Handled bool
	// Lookup is non-nil when a new lookup must be issued.
	Lookup *Lookup
	// Confirmed is non-nil when an option was confirmed.
	Confirmed *suggest.Item
	// Moved is true when the highlight or hover moved.
	Moved bool
	// Redirected is true when a keypress on an option was sent to the input.
	Redirected bool
}

// OptionView is the rendering state of one option.
type OptionView struct {
	Item     suggest.Item
	Index    int
	Selected bool
	Hovered  bool
	Focused  bool
}

// Snapshot is a read-only picture of the widget handed to views.
type Snapshot struct {
	Query       string
	QueryCursor int
	Options     []OptionView
	Highlight   int
	Hovered     int
	Phase       Phase
	Focus       Focus
	Expanded    bool
	NoOptions   bool
	Pending     bool
	Status      announce.Status
}

// SelectionView receives a snapshot after every state change.
type SelectionView interface {
	Render(Snapshot)
}

// Combobox is the keyboard and mouse selection state machine. It is not safe
// for concurrent use; adapters drive it from a single event loop.
type Combobox struct {
	Query           string
	QueryCursor     int
	Items           []suggest.Item
	Highlight       int
	Hovered         int
	Focus           Focus
	Open            bool
	ValidChoiceMade bool
	ViewportOffset  int

	opts      Options
	view      SelectionView
	seq       int
	pending   bool
	lookedUp  bool
	dismissed bool
	// stale is set when a blur dropped a pending lookup. Items is empty and
	// the status stays silent until a fresh lookup answers.
	stale bool
}

// New constructs a Combobox. The view may be nil.
func New(opts Options, view SelectionView) *Combobox {
	if opts.MinLength < 0 {
		opts.MinLength = 0
	}
	return &Combobox{
		Highlight: -1,
		Hovered:   -1,
		opts:      opts,
		view:      view,
	}
}

// Options returns the configuration in use.
func (c *Combobox) Options() Options {
	return c.opts
}

// Phase derives the menu phase.
func (c *Combobox) Phase() Phase {
	if !c.Open || len(c.Items) == 0 {
		return PhaseClosed
	}
	if c.Highlight >= 0 {
		return PhaseHighlighted
	}
	return PhaseIdle
}

// Pending reports whether a lookup is outstanding.
func (c *Combobox) Pending() bool {
	return c.pending
}

// Seq returns the sequence number of the latest lookup issued.
func (c *Combobox) Seq() int {
	return c.seq
}

// NoOptionsFound reports whether the "no results" notice should be shown.
func (c *Combobox) NoOptionsFound() bool {
	return c.opts.ShowNoOptionsFound &&
		c.Focus != FocusNone &&
		c.lookedUp &&
		!c.dismissed &&
		len(c.Items) == 0 &&
		c.queryLongEnough()
}

// Expanded mirrors aria-expanded: true while a menu or the notice is visible.
func (c *Combobox) Expanded() bool {
	return c.Phase() != PhaseClosed || c.NoOptionsFound()
}

// HighlightedItem returns the highlighted item.
func (c *Combobox) HighlightedItem() (suggest.Item, bool) {
	if c.Highlight < 0 || c.Highlight >= len(c.Items) {
		return suggest.Item{}, false
	}
	return c.Items[c.Highlight], true
}

// Status describes the widget for the live regions.
func (c *Combobox) Status() announce.Status {
	st := announce.Status{
		QueryLength:   queryLength(c.Query),
		MinLength:     c.opts.MinLength,
		Count:         len(c.Items),
		SelectedIndex: -1,
		Silenced:      c.Focus == FocusNone || c.ValidChoiceMade || c.stale,
	}
	if item, ok := c.HighlightedItem(); ok {
		st.Selected = item.Label
		st.SelectedIndex = c.Highlight
	}
	return st
}

// StatusText renders Status with the configured templates.
func (c *Combobox) StatusText() string {
	return c.opts.Messages.Compose(c.Status())
}

// Snapshot captures the current state.
func (c *Combobox) Snapshot() Snapshot {
	snap := Snapshot{
		Query:       c.Query,
		QueryCursor: c.QueryCursorPos(),
		Highlight:   c.Highlight,
		Hovered:     c.Hovered,
		Phase:       c.Phase(),
		Focus:       c.Focus,
		Expanded:    c.Expanded(),
		NoOptions:   c.NoOptionsFound(),
		Pending:     c.pending,
		Status:      c.Status(),
	}
	if c.Open {
		snap.Options = make([]OptionView, len(c.Items))
		for i, item := range c.Items {
			snap.Options[i] = OptionView{
				Item:     item,
				Index:    i,
				Selected: i == c.Highlight,
				Hovered:  i == c.Hovered,
				Focused:  c.Focus == FocusOption && i == c.Highlight,
			}
		}
	}
	return snap
}

// FocusInput gives focus to the input. A menu closed by blurring reopens when
// its options are still relevant. When the blur dropped a pending lookup the
// query is looked up again instead.
func (c *Combobox) FocusInput() Change {
	if c.Focus == FocusInput {
		return Change{}
	}
	wasBlurred := c.Focus == FocusNone
	c.Focus = FocusInput
	c.Hovered = -1
	c.Highlight = -1
	ch := Change{Handled: true}
	switch {
	case !wasBlurred || c.ValidChoiceMade:
	case c.stale:
		if (c.Query != "" && c.queryLongEnough()) || c.opts.ShowAllValues {
			ch.Lookup = c.issueLookup(c.Query)
		} else {
			c.stale = false
		}
	case c.Query != "" && c.queryLongEnough() && len(c.Items) > 0:
		c.Open = true
	}
	if c.Open && c.opts.Autoselect {
		c.Highlight = 0
	}
	return c.changed(ch)
}

// Blur removes focus from the widget and closes the menu. With ConfirmOnBlur
// the highlighted option is confirmed first.
func (c *Combobox) Blur() Change {
	if c.Focus == FocusNone {
		return Change{}
	}
	ch := Change{Handled: true}
	if c.opts.ConfirmOnBlur && c.Open {
		if item, ok := c.HighlightedItem(); ok {
			c.setQuery(c.InputValue(item))
			c.cancelLookup()
			confirmed := item
			ch.Confirmed = &confirmed
		}
	}
	if c.pending {
		c.cancelLookup()
		c.Items = nil
		c.ViewportOffset = 0
		c.lookedUp = false
		c.stale = true
	}
	c.Focus = FocusNone
	c.Open = false
	c.Highlight = -1
	c.Hovered = -1
	c.ValidChoiceMade = c.isQueryAnOption()
	return c.changed(ch)
}

// ApplyResults installs the result of a lookup. Results for any lookup other
// than the most recent one are discarded and false is returned. A failed lookup
// is treated as an empty result.
func (c *Combobox) ApplyResults(seq int, items []suggest.Item, err error) bool {
	if !c.pending || seq != c.seq {
		return false
	}
	c.pending = false
	c.lookedUp = true
	c.stale = false
	if err != nil {
		items = nil
	}
	c.Items = suggest.CloneItems(items)
	c.Highlight = -1
	c.Hovered = -1
	c.ViewportOffset = 0
	if c.Focus == FocusOption {
		c.Focus = FocusInput
	}
	c.Open = len(c.Items) > 0 && c.Focus != FocusNone
	if c.Open && c.opts.Autoselect {
		c.Highlight = 0
	}
	c.render()
	return true
}

// Refresh re-runs the lookup for the current query, for example after the
// catalogue changed.
func (c *Combobox) Refresh() Change {
	if c.Focus == FocusNone || c.ValidChoiceMade || c.Query == "" || !c.queryLongEnough() {
		return Change{}
	}
	return Change{Handled: true, Lookup: c.issueLookup(c.Query)}
}

func (c *Combobox) issueLookup(query string) *Lookup {
	c.seq++
	c.pending = true
	return &Lookup{Seq: c.seq, Query: query}
}

// cancelLookup invalidates any lookup in flight.
func (c *Combobox) cancelLookup() {
	if c.pending {
		c.seq++
		c.pending = false
	}
}

func (c *Combobox) confirm(index int) Change {
	if index < 0 || index >= len(c.Items) {
		return Change{}
	}
	item := c.Items[index]
	c.setQuery(c.InputValue(item))
	c.cancelLookup()
	c.Open = false
	c.Highlight = -1
	c.Hovered = -1
	c.Focus = FocusInput
	c.ValidChoiceMade = true
	return c.changed(Change{Handled: true, Confirmed: &item})
}

func (c *Combobox) close() {
	c.Open = false
	c.Highlight = -1
	c.Hovered = -1
	c.dismissed = true
	if c.Focus == FocusOption {
		c.Focus = FocusInput
	}
}

// InputValue returns the text placed in the input when item is confirmed.
func (c *Combobox) InputValue(item suggest.Item) string {
	if c.opts.InputValue != nil {
		return c.opts.InputValue(item)
	}
	return item.Label
}

func (c *Combobox) isQueryAnOption() bool {
	if c.Query == "" {
		return false
	}
	for _, item := range c.Items {
		if strings.EqualFold(c.InputValue(item), c.Query) {
			return true
		}
	}
	return false
}

func (c *Combobox) queryLongEnough() bool {
	return queryLength(c.Query) >= c.opts.MinLength
}

func (c *Combobox) changed(ch Change) Change {
	c.render()
	return ch
}

func (c *Combobox) render() {
	if c.view != nil {
		c.view.Render(c.Snapshot())
	}
}

func queryLength(q string) int {
	return len([]rune(q))
}
