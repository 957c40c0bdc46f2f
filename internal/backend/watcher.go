package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/accessible-autocomplete/internal/logging/events"
	"github.com/atomicstack/accessible-autocomplete/internal/suggest"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindCatalogue Kind = iota
)

// Event conveys a reloaded catalogue or an error from the watcher.
type Event struct {
	Kind  Kind
	Path  string
	Items []suggest.Item
	Err   error
}

// Loader reads a catalogue file.
type Loader func(path string) ([]suggest.Item, error)

// Watcher reloads a catalogue file whenever it changes on disk and publishes
// the result. The parent directory is watched so editors that replace the
// file by renaming are noticed too.
type Watcher struct {
	path     string
	load     Loader
	throttle *throttle
	fs       *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. Reloads are at least interval apart.
func NewWatcher(path string, interval time.Duration, load Loader) (*Watcher, error) {
	if load == nil {
		load = suggest.LoadFile
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalogue path: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	events.Catalogue.Watch(abs)

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		load:     load,
		throttle: newThrottle(interval),
		fs:       fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The loop exits after its current reload completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch loop has exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fs.Close()

	for {
		select {
		case <-w.ctx.Done():
			return
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(evt) {
				continue
			}
			if !w.throttle.wait(w.ctx) {
				return
			}
			items, err := w.load(w.path)
			if !w.emit(Event{Kind: KindCatalogue, Path: w.path, Items: items, Err: err}) {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Kind: KindCatalogue, Path: w.path, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) relevant(evt fsnotify.Event) bool {
	if filepath.Clean(evt.Name) != w.path {
		return false
	}
	return evt.Has(fsnotify.Write) || evt.Has(fsnotify.Create) || evt.Has(fsnotify.Rename)
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
