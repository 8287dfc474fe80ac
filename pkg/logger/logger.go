// Package logger provides the structured logging facility used throughout
// httpd: a thin wrapper over charmbracelet/log with a context-carried
// default and test-friendly configuration.
package logger

import (
	"context"
	"io"
	"os"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// LogLevel is a string-typed log level, kept independent of the underlying
// logging library so callers never import charmbracelet/log directly.
type LogLevel string

const (
	DebugLevel    LogLevel = "debug"
	InfoLevel     LogLevel = "info"
	WarnLevel     LogLevel = "warn"
	ErrorLevel    LogLevel = "error"
	DisabledLevel LogLevel = "disabled"
)

// ToCharmlogLevel converts to the underlying library's level type. Unknown
// values default to InfoLevel.
func (l LogLevel) ToCharmlogLevel() charmlog.Level {
	switch l {
	case DebugLevel:
		return charmlog.DebugLevel
	case InfoLevel:
		return charmlog.InfoLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	case DisabledLevel:
		return charmlog.Level(1000)
	default:
		return charmlog.InfoLevel
	}
}

// Config controls how a Logger is constructed.
type Config struct {
	Level      LogLevel
	Output     io.Writer
	JSON       bool
	AddSource  bool
	TimeFormat string
}

// DefaultConfig returns the configuration used outside of tests: info
// level, human-readable output to stdout, colorized when stdout is a
// terminal (decided by the caller via NewDefault).
func DefaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		Output:     os.Stdout,
		JSON:       false,
		AddSource:  false,
		TimeFormat: "15:04:05",
	}
}

// TestConfig returns a configuration that discards all output, for use in
// unit tests that don't want log noise.
func TestConfig() *Config {
	return &Config{
		Level:      DisabledLevel,
		Output:     io.Discard,
		JSON:       false,
		AddSource:  false,
		TimeFormat: "15:04:05",
	}
}

// IsTestEnvironment reports whether the process is running under `go test`.
func IsTestEnvironment() bool {
	return testing.Testing()
}

// Logger is the logging surface used by the rest of the codebase.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
	With(kv ...any) Logger
}

type charmLogger struct {
	l *charmlog.Logger
}

func (c *charmLogger) Debug(msg string, kv ...any) { c.l.Debug(msg, kv...) }
func (c *charmLogger) Info(msg string, kv ...any)  { c.l.Info(msg, kv...) }
func (c *charmLogger) Warn(msg string, kv ...any)  { c.l.Warn(msg, kv...) }
func (c *charmLogger) Error(msg string, kv ...any) { c.l.Error(msg, kv...) }

func (c *charmLogger) With(kv ...any) Logger {
	return &charmLogger{l: c.l.With(kv...)}
}

// NewLogger builds a Logger from config, falling back to a sensible default
// when config is nil: the test default when running under `go test`,
// otherwise DefaultConfig.
func NewLogger(config *Config) Logger {
	if config == nil {
		if IsTestEnvironment() {
			config = TestConfig()
		} else {
			config = DefaultConfig()
		}
	}
	opts := charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      config.TimeFormat,
		Formatter:       charmlog.TextFormatter,
	}
	if config.JSON {
		opts.Formatter = charmlog.JSONFormatter
	}
	l := charmlog.NewWithOptions(config.Output, opts)
	l.SetLevel(config.Level.ToCharmlogLevel())
	l.SetReportCaller(config.AddSource)
	return &charmLogger{l: l}
}

// NewDefault builds the process-wide default logger: human-readable text
// when w is a terminal, JSON otherwise.
func NewDefault(w *os.File, level LogLevel) Logger {
	cfg := &Config{
		Level:      level,
		Output:     w,
		JSON:       !isatty.IsTerminal(w.Fd()),
		AddSource:  false,
		TimeFormat: "15:04:05",
	}
	return NewLogger(cfg)
}

type ctxKey int

// LoggerCtxKey is the context key a Logger is stored under.
const LoggerCtxKey ctxKey = iota

var fallback = NewLogger(nil)

// ContextWithLogger returns a child context carrying l.
func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, LoggerCtxKey, l)
}

// FromContext retrieves the Logger stored in ctx, or the process-wide
// fallback logger when none is present or the stored value is invalid.
func FromContext(ctx context.Context) Logger {
	if ctx == nil {
		return fallback
	}
	if l, ok := ctx.Value(LoggerCtxKey).(Logger); ok && l != nil {
		return l
	}
	return fallback
}
