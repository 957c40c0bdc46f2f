package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/accessible-autocomplete/internal/announce"
	"github.com/atomicstack/accessible-autocomplete/internal/backend"
	"github.com/atomicstack/accessible-autocomplete/internal/bridge"
	"github.com/atomicstack/accessible-autocomplete/internal/state"
	"github.com/atomicstack/accessible-autocomplete/internal/suggest"
	"github.com/atomicstack/accessible-autocomplete/internal/theme"
	"github.com/atomicstack/accessible-autocomplete/internal/ui"
	uistate "github.com/atomicstack/accessible-autocomplete/internal/ui/state"
)

const (
	ModeTUI    = "tui"
	ModeBridge = "bridge"
)

// ErrCancelled is returned when the user leaves the widget without submitting.
var ErrCancelled = errors.New("selection cancelled")

const reloadInterval = 250 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	ID            string
	Mode          string
	Source        string
	Match         string
	Limit         int
	MinLength     int
	Autoselect    bool
	ConfirmOnBlur bool
	ShowNoOptions bool
	ShowAll       bool
	StatusDelay   time.Duration
	AnnounceFile  string
	Width         int
	Height        int
	ShowFooter    bool
	Blink         bool
	Placeholder   string
	Template      string
	Watch         bool
}

// Streams are the descriptors the application reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run bootstraps and executes the widget on the process's standard streams.
func Run(cfg Config) error {
	return RunContext(context.Background(), cfg, Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
}

// RunContext executes the widget in the configured mode. In tui mode the
// submitted value is printed to Out once the program exits.
func RunContext(ctx context.Context, cfg Config, streams Streams) error {
	store, err := loadCatalogue(cfg.Source)
	if err != nil {
		return err
	}
	mode, err := suggest.ParseMatchMode(cfg.Match)
	if err != nil {
		return err
	}
	source := suggest.Dedupe(suggest.NewStatic(store, mode, cfg.Limit))
	opts := uistate.Options{
		MinLength:          cfg.MinLength,
		Autoselect:         cfg.Autoselect,
		ConfirmOnBlur:      cfg.ConfirmOnBlur,
		ShowNoOptionsFound: cfg.ShowNoOptions,
		ShowAllValues:      cfg.ShowAll,
	}

	switch cfg.Mode {
	case ModeBridge:
		b, err := bridge.New(bridge.Config{
			ID:          cfg.ID,
			Source:      source,
			Options:     opts,
			StatusDelay: cfg.StatusDelay,
			PageSize:    cfg.Height,
		})
		if err != nil {
			return err
		}
		return b.Run(ctx, streams.In, streams.Out)
	case ModeTUI, "":
		return runTUI(ctx, cfg, store, source, opts, streams)
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}

func runTUI(ctx context.Context, cfg Config, store state.CatalogueStore, source suggest.Source, opts uistate.Options, streams Streams) error {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		ui.SetStyles(theme.Plain())
	}
	tmpl, err := ui.TemplateByName(cfg.Template)
	if err != nil {
		return err
	}
	var sink *announce.WriterSink
	if cfg.AnnounceFile != "" {
		f, err := os.OpenFile(cfg.AnnounceFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open announce file: %w", err)
		}
		defer f.Close()
		sink = announce.NewWriterSink(cfg.ID, f)
	}
	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = backend.NewWatcher(cfg.Source, reloadInterval, nil)
		if err != nil {
			return fmt.Errorf("watch catalogue: %w", err)
		}
		defer func() {
			watcher.Stop()
			watcher.Wait()
		}()
	}

	uiCfg := ui.Config{
		ID:          cfg.ID,
		Source:      source,
		Options:     opts,
		Template:    tmpl,
		StatusDelay: cfg.StatusDelay,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		Blink:       cfg.Blink,
		Placeholder: cfg.Placeholder,
		Catalogue:   store,
		Watcher:     watcher,
		Context:     ctx,
	}
	if sink != nil {
		uiCfg.Sink = sink
	}
	model, err := ui.New(uiCfg)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(streams.In),
		tea.WithOutput(streams.Err),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}
	if sink != nil {
		if err := sink.Err(); err != nil {
			return fmt.Errorf("write announcements: %w", err)
		}
	}
	res := model.Result()
	if res.Cancelled {
		return ErrCancelled
	}
	_, err = fmt.Fprintln(streams.Out, res.Value)
	return err
}

// loadCatalogue reads the catalogue file, or the built-in country list when
// no file is configured.
func loadCatalogue(path string) (state.CatalogueStore, error) {
	if path == "" {
		return state.NewCatalogueStore(suggest.Countries()), nil
	}
	items, err := suggest.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}
	return state.NewCatalogueStore(items), nil
}
