package command

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/atomicstack/accessible-autocomplete/internal/logging"
	"github.com/atomicstack/accessible-autocomplete/internal/logging/events"
	"github.com/atomicstack/accessible-autocomplete/internal/suggest"
)

// Request encapsulates one lookup against a suggestion source.
type Request struct {
	Seq   int
	Query string
}

// LookupResult is delivered to the model when a lookup completes, whether it
// succeeded or not.
type LookupResult struct {
	Seq   int
	Query string
	Items []suggest.Item
	Err   error
}

// Bus coordinates the execution of lookups. Starting a lookup cancels the
// context of the one before it; ordering is still enforced by the receiver
// through sequence numbers since sources may ignore cancellation.
type Bus struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Lookup wraps a source lookup into a Bubble Tea command while emitting trace logs.
func (b *Bus) Lookup(ctx context.Context, source suggest.Source, req Request) tea.Cmd {
	events.Lookup.Queue(req.Seq, req.Query)
	if source == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	b.cancel = cancel
	b.mu.Unlock()

	if _, err := logr.FromContext(ctx); err != nil {
		ctx = logr.NewContext(ctx, logging.Logr().WithValues("seq", req.Seq))
	}
	return func() tea.Msg {
		defer cancel()
		items, err := source.Lookup(ctx, req.Query)
		if err != nil {
			events.Lookup.Error(req.Seq, err)
			return LookupResult{Seq: req.Seq, Query: req.Query, Err: err}
		}
		events.Lookup.Result(req.Seq, req.Query, len(items))
		return LookupResult{Seq: req.Seq, Query: req.Query, Items: items}
	}
}

// Cancel aborts the lookup in flight, if any.
func (b *Bus) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}
