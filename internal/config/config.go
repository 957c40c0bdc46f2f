package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"

	"github.com/atomicstack/accessible-autocomplete/internal/app"
	"github.com/atomicstack/accessible-autocomplete/internal/suggest"
	"github.com/atomicstack/accessible-autocomplete/internal/ui"
	uistate "github.com/atomicstack/accessible-autocomplete/internal/ui/state"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig        = "AUTOCOMPLETE_CONFIG"
	envID            = "AUTOCOMPLETE_ID"
	envMode          = "AUTOCOMPLETE_MODE"
	envSource        = "AUTOCOMPLETE_SOURCE"
	envMatch         = "AUTOCOMPLETE_MATCH"
	envLimit         = "AUTOCOMPLETE_LIMIT"
	envMinLength     = "AUTOCOMPLETE_MIN_LENGTH"
	envAutoselect    = "AUTOCOMPLETE_AUTOSELECT"
	envConfirmOnBlur = "AUTOCOMPLETE_CONFIRM_ON_BLUR"
	envShowNoOptions = "AUTOCOMPLETE_SHOW_NO_OPTIONS"
	envShowAll       = "AUTOCOMPLETE_SHOW_ALL"
	envStatusDelay   = "AUTOCOMPLETE_STATUS_DELAY"
	envAnnounceFile  = "AUTOCOMPLETE_ANNOUNCE_FILE"
	envWidth         = "AUTOCOMPLETE_WIDTH"
	envHeight        = "AUTOCOMPLETE_HEIGHT"
	envShowFooter    = "AUTOCOMPLETE_FOOTER"
	envBlink         = "AUTOCOMPLETE_BLINK"
	envPlaceholder   = "AUTOCOMPLETE_PLACEHOLDER"
	envTemplate      = "AUTOCOMPLETE_TEMPLATE"
	envWatch         = "AUTOCOMPLETE_WATCH"
	envTrace         = "AUTOCOMPLETE_TRACE"
	envLogFile       = "AUTOCOMPLETE_LOG_FILE"
)

// fileConfig is the TOML layout of --config. Unset keys leave the defaults
// alone.
type fileConfig struct {
	ID            *string `toml:"id"`
	Mode          *string `toml:"mode"`
	Source        *string `toml:"source"`
	Match         *string `toml:"match"`
	Limit         *int    `toml:"limit"`
	MinLength     *int    `toml:"min_length"`
	Autoselect    *bool   `toml:"autoselect"`
	ConfirmOnBlur *bool   `toml:"confirm_on_blur"`
	ShowNoOptions *bool   `toml:"show_no_options"`
	ShowAll       *bool   `toml:"show_all"`
	StatusDelay   *string `toml:"status_delay"`
	AnnounceFile  *string `toml:"announce_file"`
	Width         *int    `toml:"width"`
	Height        *int    `toml:"height"`
	Footer        *bool   `toml:"footer"`
	Blink         *bool   `toml:"blink"`
	Placeholder   *string `toml:"placeholder"`
	Template      *string `toml:"template"`
	Watch         *bool   `toml:"watch"`
	Trace         *bool   `toml:"trace"`
	LogFile       *string `toml:"log_file"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values are
// layered as defaults, then the config file, then the environment, then flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path := envOrDefault(env, envConfig, "")
	if v, ok := scanFlag(args, "config"); ok {
		path = v
	}
	var file fileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &file); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	fileDelay := ui.DefaultStatusDelay
	if file.StatusDelay != nil {
		d, err := time.ParseDuration(*file.StatusDelay)
		if err != nil {
			return Config{}, fmt.Errorf("parse config file %s: status_delay: %w", path, err)
		}
		fileDelay = d
	}

	fs := pflag.NewFlagSet("accessible-autocomplete", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.SortFlags = false

	fs.String("config", path, "path to a TOML config file")
	id := fs.String("id", envOrDefault(env, envID, strOr(file.ID, "autocomplete")), "widget id used to name the status regions")
	mode := fs.String("mode", envOrDefault(env, envMode, strOr(file.Mode, app.ModeTUI)), "tui renders in the terminal; bridge speaks JSON lines on stdin/stdout")
	source := fs.String("source", envOrDefault(env, envSource, strOr(file.Source, "")), "catalogue file (.yaml, .toml or one label per line); built-in country list when empty")
	match := fs.String("match", envOrDefault(env, envMatch, strOr(file.Match, string(suggest.MatchContains))), "match mode: contains, prefix or fuzzy")
	limit := fs.Int("limit", envOrInt(env, envLimit, intOr(file.Limit, 0)), "maximum number of suggestions (0 is unlimited)")
	minLength := fs.Int("min-length", envOrInt(env, envMinLength, intOr(file.MinLength, 0)), "characters required before suggestions are looked up")
	autoselect := fs.Bool("autoselect", envOrBool(env, envAutoselect, boolOr(file.Autoselect, false)), "highlight the first suggestion automatically")
	confirmOnBlur := fs.Bool("confirm-on-blur", envOrBool(env, envConfirmOnBlur, boolOr(file.ConfirmOnBlur, false)), "confirm the highlighted suggestion when focus leaves")
	showNoOptions := fs.Bool("show-no-options", envOrBool(env, envShowNoOptions, boolOr(file.ShowNoOptions, false)), "show a notice when nothing matches")
	showAll := fs.Bool("show-all", envOrBool(env, envShowAll, boolOr(file.ShowAll, false)), "down arrow on an empty input lists every value")
	statusDelay := fs.Duration("status-delay", envOrDuration(env, envStatusDelay, fileDelay), "how long the status waits for input to settle before it is announced")
	announceFile := fs.String("announce-file", envOrDefault(env, envAnnounceFile, strOr(file.AnnounceFile, "")), "also append announcements to this file or FIFO")
	width := fs.Int("width", envOrInt(env, envWidth, intOr(file.Width, 0)), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, intOr(file.Height, 0)), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, boolOr(file.Footer, false)), "enable footer key help (disabled by default)")
	blink := fs.Bool("blink", envOrBool(env, envBlink, boolOr(file.Blink, false)), "blink the caret")
	placeholder := fs.String("placeholder", envOrDefault(env, envPlaceholder, strOr(file.Placeholder, "")), "text shown in an empty input")
	template := fs.String("template", envOrDefault(env, envTemplate, strOr(file.Template, "default")), "option template: default or highlight")
	watch := fs.Bool("watch", envOrBool(env, envWatch, boolOr(file.Watch, false)), "reload the catalogue file when it changes")
	trace := fs.Bool("trace", envOrBool(env, envTrace, boolOr(file.Trace, false)), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, strOr(file.LogFile, "")), "path to the log file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return Config{}, fmt.Errorf("%w\n\nUsage of accessible-autocomplete:\n%s", err, fs.FlagUsages())
		}
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			ID:            *id,
			Mode:          strings.ToLower(strings.TrimSpace(*mode)),
			Source:        *source,
			Match:         *match,
			Limit:         *limit,
			MinLength:     *minLength,
			Autoselect:    *autoselect,
			ConfirmOnBlur: *confirmOnBlur,
			ShowNoOptions: *showNoOptions,
			ShowAll:       *showAll,
			StatusDelay:   *statusDelay,
			AnnounceFile:  *announceFile,
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			Blink:         *blink,
			Placeholder:   *placeholder,
			Template:      *template,
			Watch:         *watch,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File:  path,
		Flags: make(map[string]string),
		Args:  append([]string(nil), args...),
	}
	fs.VisitAll(func(f *pflag.Flag) {
		cfg.Flags[f.Name] = f.Value.String()
	})

	return cfg, nil
}

// scanFlag finds --name or --name=value ahead of the real parse, so the
// config file can provide defaults for every other flag.
func scanFlag(args []string, name string) (string, bool) {
	long := "--" + name
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if arg == long && i+1 < len(args) {
			return args[i+1], true
		}
		if v, ok := strings.CutPrefix(arg, long+"="); ok {
			return v, true
		}
	}
	return "", false
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// envOrDuration accepts Go durations ("250ms") and bare milliseconds ("250").
func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func strOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(os.Stderr, strings.TrimPrefix(err.Error(), pflag.ErrHelp.Error()+"\n\n"))
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects option combinations the widget cannot run with.
func Validate(cfg Config) error {
	a := cfg.App
	if strings.TrimSpace(a.ID) == "" {
		return uistate.ErrNoID
	}
	switch a.Mode {
	case app.ModeTUI, app.ModeBridge:
	default:
		return fmt.Errorf("mode must be %q or %q (got %q)", app.ModeTUI, app.ModeBridge, a.Mode)
	}
	if _, err := suggest.ParseMatchMode(a.Match); err != nil {
		return err
	}
	if _, err := ui.TemplateByName(a.Template); err != nil {
		return err
	}
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	if a.Limit < 0 {
		return fmt.Errorf("limit must be >= 0 (got %d)", a.Limit)
	}
	if a.MinLength < 0 {
		return fmt.Errorf("min-length must be >= 0 (got %d)", a.MinLength)
	}
	if a.StatusDelay < 0 {
		return fmt.Errorf("status-delay must be >= 0 (got %s)", a.StatusDelay)
	}
	if a.Watch && a.Source == "" {
		return errors.New("watch requires a catalogue file (--source)")
	}
	return nil
}
