// Package logging wires log/slog to a rotating file. The terminal belongs to
// tcell (or to a child process), so nothing is ever written to stdout/stderr.
package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Component names attached to every record of a component logger.
const (
	CompApp     = "app"
	CompCache   = "cache"
	CompExec    = "exec"
	CompTerm    = "term"
	CompPreview = "preview"
	CompConfig  = "config"
	CompWatch   = "watch"
)

// LogFileName is the active log file inside Config.LogDir.
const LogFileName = "rtab.log"

// Config holds logging configuration.
type Config struct {
	// LogDir is the directory for the log file. Empty disables file output
	// unless Debug is set.
	LogDir string

	// Level is the minimum level: "debug", "info", "warn", "error".
	Level string

	// Format is "json" (default) or "text".
	Format string

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Debug forces debug level.
	Debug bool
}

var (
	globalMu     sync.RWMutex
	globalLogger *slog.Logger
	fileWriter   *lumberjack.Logger
)

// Init installs the global logger. Without a LogDir everything is discarded.
func Init(cfg Config) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if fileWriter != nil {
		_ = fileWriter.Close()
		fileWriter = nil
	}

	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 14
	}

	level := ParseLevel(cfg.Level)
	if cfg.Debug {
		level = slog.LevelDebug
	}

	if cfg.LogDir == "" {
		globalLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return
	}

	fileWriter = &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, LogFileName),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(fileWriter, opts)
	} else {
		handler = slog.NewJSONHandler(fileWriter, opts)
	}
	globalLogger = slog.New(handler)
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger returns the global logger. Safe to call before Init.
func Logger() *slog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return globalLogger
}

// ForComponent returns a logger tagged with component=name. It resolves the
// global handler on every record, so package-level loggers created before
// Init still reach the file.
func ForComponent(name string) *slog.Logger {
	return slog.New(&componentHandler{component: name})
}

type componentHandler struct {
	component string
	attrs     []slog.Attr
	group     string
}

func (h *componentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return Logger().Handler().Enabled(ctx, level)
}

func (h *componentHandler) Handle(ctx context.Context, r slog.Record) error {
	handler := Logger().Handler().WithAttrs([]slog.Attr{slog.String("component", h.component)})
	if len(h.attrs) > 0 {
		handler = handler.WithAttrs(h.attrs)
	}
	if h.group != "" {
		handler = handler.WithGroup(h.group)
	}
	return handler.Handle(ctx, r)
}

func (h *componentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &componentHandler{component: h.component, attrs: merged, group: h.group}
}

func (h *componentHandler) WithGroup(name string) slog.Handler {
	return &componentHandler{component: h.component, attrs: h.attrs, group: name}
}

// Shutdown closes the log file and resets to the discard logger.
func Shutdown() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if fileWriter != nil {
		_ = fileWriter.Close()
		fileWriter = nil
	}
	globalLogger = nil
}
