package ui

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/accessible-autocomplete/internal/announce"
	"github.com/atomicstack/accessible-autocomplete/internal/backend"
	"github.com/atomicstack/accessible-autocomplete/internal/data/dispatcher"
	"github.com/atomicstack/accessible-autocomplete/internal/state"
	"github.com/atomicstack/accessible-autocomplete/internal/suggest"
	"github.com/atomicstack/accessible-autocomplete/internal/theme"
	"github.com/atomicstack/accessible-autocomplete/internal/ui/command"
	uistate "github.com/atomicstack/accessible-autocomplete/internal/ui/state"
)

// DefaultStatusDelay is how long the status waits for input to settle before
// it is announced.
const DefaultStatusDelay = 1400 * time.Millisecond

var styles = theme.Default()

// SetStyles replaces the styles used by every widget, for example with
// theme.Plain() when colour is disabled.
func SetStyles(s *theme.Styles) {
	if s != nil {
		styles = s
	}
}

type msgHandler func(tea.Msg) tea.Cmd

// Config describes how the widget is mounted.
type Config struct {
	// ID prefixes the live region ids.
	ID string
	// Source produces suggestions.
	Source suggest.Source
	// Options configures the selection state machine.
	Options uistate.Options
	// Template renders options; DefaultTemplate when nil.
	Template Template
	// Sink receives announcements in addition to the on-screen regions.
	Sink announce.Sink
	// StatusDelay debounces status announcements; zero announces immediately.
	StatusDelay time.Duration
	Width       int
	Height      int
	ShowFooter  bool
	Blink       bool
	Placeholder string
	// Catalogue and Watcher enable live catalogue reloads.
	Catalogue state.CatalogueStore
	Watcher   *backend.Watcher
	// Context is the parent of every lookup context.
	Context context.Context
}

// Result is what the user ended up with when the program exits.
type Result struct {
	Value     string
	Item      *suggest.Item
	Cancelled bool
}

// Model implements the Bubble Tea model for the autocomplete widget.
type Model struct {
	id       string
	combo    *uistate.Combobox
	snapshot uistate.Snapshot
	source   suggest.Source
	ctx      context.Context
	bus      *command.Bus

	regions     *announce.Regions
	announcer   *announce.Announcer
	statusDelay time.Duration
	statusSeq   int
	lastStatus  announce.Status

	template      Template
	placeholder   string
	width         int
	height        int
	fixedWidth    bool
	fixedHeight   bool
	showFooter    bool
	keys          keyMap
	help          help.Model
	cursor        cursor.Model
	cursorDirty   bool
	rows          []rowTarget
	rowsPerOption int

	backend    *backend.Watcher
	backendErr string
	catalogue  state.CatalogueStore
	dispatcher *dispatcher.Dispatcher

	confirmed *suggest.Item
	result    Result

	handlers map[reflect.Type]msgHandler
}

// New mounts the widget. It refuses to mount without an id or a source.
func New(cfg Config) (*Model, error) {
	if strings.TrimSpace(cfg.ID) == "" {
		return nil, uistate.ErrNoID
	}
	if cfg.Source == nil {
		return nil, uistate.ErrNoSource
	}
	regions := &announce.Regions{}
	var sink announce.Sink = regions
	if cfg.Sink != nil {
		sink = announce.MultiSink{regions, cfg.Sink}
	}
	announcer, err := announce.New(sink)
	if err != nil {
		return nil, fmt.Errorf("mount announcer: %w", err)
	}
	tmpl := cfg.Template
	if tmpl == nil {
		tmpl = DefaultTemplate()
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	statusDelay := cfg.StatusDelay
	if statusDelay < 0 {
		statusDelay = 0
	}

	m := &Model{
		id:            cfg.ID,
		source:        cfg.Source,
		ctx:           ctx,
		bus:           command.New(),
		regions:       regions,
		announcer:     announcer,
		statusDelay:   statusDelay,
		template:      tmpl,
		placeholder:   cfg.Placeholder,
		showFooter:    cfg.ShowFooter,
		keys:          defaultKeyMap(),
		help:          newHelp(),
		backend:       cfg.Watcher,
		catalogue:     cfg.Catalogue,
		rowsPerOption: 1,
	}
	if m.placeholder == "" {
		m.placeholder = "(type to search)"
	}
	if cfg.Catalogue != nil {
		m.dispatcher = dispatcher.New(cfg.Catalogue)
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Input != nil {
		c.TextStyle = styles.Input.Copy()
	}
	c.SetChar(" ")
	if !cfg.Blink {
		c.SetMode(cursor.CursorStatic)
	}
	m.cursor = c

	m.combo = uistate.New(cfg.Options, m)
	m.combo.FocusInput()
	m.snapshot = m.combo.Snapshot()
	m.lastStatus = m.combo.Status()
	m.registerHandlers()
	return m, nil
}

func newHelp() help.Model {
	h := help.New()
	if styles.Footer != nil {
		h.Styles.ShortKey = styles.Footer.Copy().Bold(true)
		h.Styles.ShortDesc = styles.Footer.Copy()
		h.Styles.ShortSeparator = styles.Footer.Copy()
	}
	return h
}

// Render implements uistate.SelectionView.
func (m *Model) Render(snap uistate.Snapshot) {
	m.snapshot = snap
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.cursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):           m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):         m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):    m.handleWindowSizeMsg,
		reflect.TypeOf(tea.FocusMsg{}):         m.handleFocusMsg,
		reflect.TypeOf(tea.BlurMsg{}):          m.handleBlurMsg,
		reflect.TypeOf(command.LookupResult{}): m.handleLookupResultMsg,
		reflect.TypeOf(statusTickMsg{}):        m.handleStatusTickMsg,
		reflect.TypeOf(backendEventMsg{}):      m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):       m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate restarts the caret blink after edits and schedules a status
// announcement whenever the described state changed.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.cursorDirty {
		m.cursorDirty = false
		m.cursor.Blink = false
		if cmd := m.cursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if st := m.combo.Status(); st != m.lastStatus {
		m.lastStatus = st
		cmds = append(cmds, m.scheduleStatus())
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Result reports the value the user submitted or confirmed.
func (m *Model) Result() Result {
	return m.result
}

// Combobox exposes the selection state machine.
func (m *Model) Combobox() *uistate.Combobox {
	return m.combo
}

// Regions exposes the on-screen live regions.
func (m *Model) Regions() *announce.Regions {
	return m.regions
}

// Announcer exposes the live region announcer.
func (m *Model) Announcer() *announce.Announcer {
	return m.announcer
}

// ID returns the widget id.
func (m *Model) ID() string {
	return m.id
}
