package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogFile = "accessible-autocomplete.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	base         *zap.Logger
	logFile      *os.File
)

// current returns the shared zap logger, opening the log file on first use.
// Callers must hold mu.
func current() *zap.Logger {
	if base != nil {
		return base
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return zap.NewNop()
	}
	logFile = f

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = "time"
	encoderCfg.MessageKey = "event"

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(f),
		zap.NewAtomicLevelAt(zapcore.DebugLevel),
	)
	base = zap.New(core)
	return base
}

// Error writes errors to the shared log file regardless of the trace setting.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	l := current()
	mu.Unlock()
	l.Error(err.Error())
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	if !traceEnabled {
		mu.Unlock()
		return
	}
	l := current()
	mu.Unlock()
	if payload == nil {
		l.Debug(event)
		return
	}
	l.Debug(event, zap.Any("payload", payload))
}

// Logr returns a logr.Logger writing to the shared log. It discards everything
// while tracing is disabled so suggestion sources can log freely.
func Logr() logr.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled {
		return logr.Discard()
	}
	return zapr.NewLogger(current())
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Close flushes and releases the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if base != nil {
		_ = base.Sync()
		base = nil
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
