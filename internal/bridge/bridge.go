// Package bridge drives the autocomplete state machine over a JSON-lines
// stream, so a host that owns its own rendering (a browser shim, an editor
// plugin) can use the widget headlessly.
//
// Each input line is one event:
//
//	{"type":"text","text":"ita"}
//	{"type":"key","key":"ArrowDown"}
//	{"type":"click","index":1}
//	{"type":"hover","index":-1}
//	{"type":"focus"} / {"type":"blur"}
//
// Output lines are "render", "status", "confirm", "submit" and "error" events.
package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/accessible-autocomplete/internal/announce"
	"github.com/atomicstack/accessible-autocomplete/internal/logging/events"
	"github.com/atomicstack/accessible-autocomplete/internal/suggest"
	"github.com/atomicstack/accessible-autocomplete/internal/ui/command"
	uistate "github.com/atomicstack/accessible-autocomplete/internal/ui/state"
)

// Config describes a bridge session.
type Config struct {
	ID      string
	Source  suggest.Source
	Options uistate.Options
	// StatusDelay debounces status announcements; zero announces immediately.
	StatusDelay time.Duration
	// PageSize is how far PageUp/PageDown move; zero pages over every option.
	PageSize int
}

// InEvent is one input line.
type InEvent struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Key   string `json:"key,omitempty"`
	Index *int   `json:"index,omitempty"`
}

// Option is an option as rendered by the host.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Hint     string `json:"hint,omitempty"`
	Selected bool   `json:"selected"`
	Hovered  bool   `json:"hovered,omitempty"`
}

// OutEvent is one output line.
type OutEvent struct {
	Type      string        `json:"type"`
	Query     string        `json:"query,omitempty"`
	Cursor    int           `json:"cursor,omitempty"`
	Expanded  bool          `json:"expanded,omitempty"`
	Focus     string        `json:"focus,omitempty"`
	Highlight *int          `json:"highlight,omitempty"`
	Options   []Option      `json:"options,omitempty"`
	NoOptions bool          `json:"noOptions,omitempty"`
	Region    string        `json:"region,omitempty"`
	Text      string        `json:"text,omitempty"`
	Item      *suggest.Item `json:"item,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// Bridge runs one widget session. It implements uistate.SelectionView and
// announce.Sink.
type Bridge struct {
	id        string
	source    suggest.Source
	pageSize  int
	delay     time.Duration
	combo     *uistate.Combobox
	announcer *announce.Announcer
	bus       *command.Bus

	enc      *json.Encoder
	writeErr error

	results  chan command.LookupResult
	inflight sync.WaitGroup
	running  int

	lastStatus announce.Status
	timer      *time.Timer
}

// New validates cfg and builds a bridge.
func New(cfg Config) (*Bridge, error) {
	if strings.TrimSpace(cfg.ID) == "" {
		return nil, uistate.ErrNoID
	}
	if cfg.Source == nil {
		return nil, uistate.ErrNoSource
	}
	b := &Bridge{
		id:       cfg.ID,
		source:   cfg.Source,
		pageSize: cfg.PageSize,
		delay:    cfg.StatusDelay,
		bus:      command.New(),
		results:  make(chan command.LookupResult),
	}
	announcer, err := announce.New(b)
	if err != nil {
		return nil, fmt.Errorf("mount announcer: %w", err)
	}
	b.announcer = announcer
	b.combo = uistate.New(cfg.Options, b)
	return b, nil
}

// Combobox exposes the state machine driven by the bridge.
func (b *Bridge) Combobox() *uistate.Combobox {
	return b.combo
}

// Render implements uistate.SelectionView.
func (b *Bridge) Render(snap uistate.Snapshot) {
	highlight := snap.Highlight
	out := OutEvent{
		Type:      "render",
		Query:     snap.Query,
		Cursor:    snap.QueryCursor,
		Expanded:  snap.Expanded,
		Focus:     snap.Focus.String(),
		Highlight: &highlight,
		NoOptions: snap.NoOptions,
	}
	for _, opt := range snap.Options {
		out.Options = append(out.Options, Option{
			Value:    opt.Item.Value,
			Label:    opt.Item.Label,
			Hint:     opt.Item.Hint,
			Selected: opt.Selected,
			Hovered:  opt.Hovered,
		})
	}
	b.emit(out)
}

// WriteRegion implements announce.Sink.
func (b *Bridge) WriteRegion(slot announce.Slot, text string) {
	b.emit(OutEvent{Type: "status", Region: announce.RegionID(b.id, slot), Text: text})
}

// Run reads events from r and writes events to w until r is exhausted and
// every in-flight lookup and pending announcement has settled, or ctx ends.
func (b *Bridge) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	b.enc = json.NewEncoder(w)
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		b.bus.Cancel()
		b.drain()
	}()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go readLines(ctx, r, lines, readErr)

	b.combo.FocusInput()
	b.lastStatus = b.combo.Status()

	for {
		if lines == nil && b.running == 0 && b.timer == nil {
			break
		}
		var tick <-chan time.Time
		if b.timer != nil {
			tick = b.timer.C
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			b.handleLine(ctx, line)
		case res := <-b.results:
			b.running--
			if !b.combo.ApplyResults(res.Seq, res.Items, res.Err) {
				events.Lookup.Stale(res.Seq, res.Query)
			}
			b.afterChange()
		case <-tick:
			b.timer = nil
			b.announce()
		}
		if b.writeErr != nil {
			return fmt.Errorf("write event: %w", b.writeErr)
		}
	}

	select {
	case err := <-readErr:
		if err != nil {
			return fmt.Errorf("read events: %w", err)
		}
	default:
	}
	return b.writeErr
}

// readLines feeds input lines to the event loop. A reader blocked in Read
// keeps this goroutine alive until it returns.
func readLines(ctx context.Context, r io.Reader, lines chan<- string, errc chan<- error) {
	defer close(lines)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	errc <- scanner.Err()
}

func (b *Bridge) drain() {
	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()
	for {
		select {
		case <-b.results:
		case <-done:
			if b.timer != nil {
				b.timer.Stop()
				b.timer = nil
			}
			return
		}
	}
}

func (b *Bridge) handleLine(ctx context.Context, line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	var ev InEvent
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		b.emit(OutEvent{Type: "error", Error: fmt.Sprintf("decode event: %v", err)})
		return
	}
	if (ev.Type == "key" || ev.Type == "click") && b.combo.Focus == uistate.FocusNone {
		// A keypress or click means the widget has focus again.
		b.apply(ctx, b.combo.FocusInput())
	}
	ch, err := b.dispatch(ev)
	if err != nil {
		b.emit(OutEvent{Type: "error", Error: err.Error()})
		return
	}
	b.apply(ctx, ch)
	b.afterChange()
}

func (b *Bridge) dispatch(ev InEvent) (uistate.Change, error) {
	c := b.combo
	switch ev.Type {
	case "text":
		ch := c.Type(ev.Text)
		events.Input.Type(b.id, c.Query, ch.Redirected)
		return ch, nil
	case "query":
		return c.SetQuery(ev.Text), nil
	case "key":
		return b.dispatchKey(ev.Key)
	case "click", "hover":
		if ev.Index == nil {
			return uistate.Change{}, fmt.Errorf("%s event requires an index", ev.Type)
		}
		if ev.Type == "hover" {
			events.Selection.Hover(b.id, *ev.Index)
			return c.Hover(*ev.Index), nil
		}
		return c.Click(*ev.Index), nil
	case "focus":
		events.Selection.Focus(b.id, true)
		return c.FocusInput(), nil
	case "blur":
		events.Selection.Focus(b.id, false)
		return c.Blur(), nil
	default:
		return uistate.Change{}, fmt.Errorf("unknown event type %q", ev.Type)
	}
}

func (b *Bridge) dispatchKey(name string) (uistate.Change, error) {
	c := b.combo
	switch name {
	case "ArrowDown", "Down":
		return c.ArrowDown(), nil
	case "ArrowUp", "Up":
		return c.ArrowUp(), nil
	case "PageDown":
		return c.PageDown(b.pageSize), nil
	case "PageUp":
		return c.PageUp(b.pageSize), nil
	case "Enter":
		ch := c.Enter()
		if !ch.Handled {
			b.emit(OutEvent{Type: "submit", Query: c.Query})
			events.App.Exit(c.Query, c.ValidChoiceMade)
		}
		return ch, nil
	case " ", "Space", "Spacebar":
		return c.Space(), nil
	case "Escape", "Esc":
		return c.Escape(), nil
	case "Tab":
		return c.Blur(), nil
	case "Backspace":
		return c.Backspace(), nil
	case "Home":
		c.MoveCursorStart()
	case "End":
		c.MoveCursorEnd()
	case "ArrowLeft", "Left":
		c.MoveCursorLeft()
	case "ArrowRight", "Right":
		c.MoveCursorRight()
	default:
		return uistate.Change{}, fmt.Errorf("unknown key %q", name)
	}
	return uistate.Change{Handled: true}, nil
}

// apply starts the lookup a change asks for, if any.
func (b *Bridge) apply(ctx context.Context, ch uistate.Change) {
	if ch.Confirmed != nil {
		item := *ch.Confirmed
		events.Selection.Confirm(b.id, item.Value, item.Label)
		b.emit(OutEvent{Type: "confirm", Query: b.combo.Query, Item: &item})
	}
	if ch.Lookup == nil {
		if !b.combo.Pending() {
			b.bus.Cancel()
		}
		return
	}
	cmd := b.bus.Lookup(ctx, b.source, command.Request{Seq: ch.Lookup.Seq, Query: ch.Lookup.Query})
	if cmd == nil {
		return
	}
	b.running++
	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		res, _ := cmd().(command.LookupResult)
		select {
		case b.results <- res:
		case <-ctx.Done():
		}
	}()
}

// afterChange schedules an announcement when the described state changed.
func (b *Bridge) afterChange() {
	st := b.combo.Status()
	if st == b.lastStatus {
		return
	}
	b.lastStatus = st
	events.Announce.Schedule(b.id, b.announcer.Count()+1, b.delay.Milliseconds())
	if b.delay <= 0 {
		b.announce()
		return
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.NewTimer(b.delay)
}

func (b *Bridge) announce() {
	text := b.combo.StatusText()
	slot := b.announcer.Announce(text)
	events.Announce.Write(announce.RegionID(b.id, slot), text)
}

func (b *Bridge) emit(ev OutEvent) {
	if b.enc == nil || b.writeErr != nil {
		return
	}
	if err := b.enc.Encode(ev); err != nil {
		b.writeErr = err
	}
}
