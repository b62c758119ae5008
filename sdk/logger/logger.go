// Package logger provides a slog based logger configured from the environment,
// with optional per-level event hooks.
package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/alisideas/bookshare/sdk/environment"
)

// Level aliases so callers do not need to import log/slog.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger is a wrapper around the standard slog.Logger.
type Logger struct {
	*slog.Logger
}

// options holds all configurable settings for the logger.
type options struct {
	level      slog.Level
	output     io.Writer
	addSource  bool
	format     string // "json" or "text"
	timeFormat string // "RFC3339", "Unix", "UnixMilli", or custom layout
	events     Events
}

// Options is the exportable configuration struct.
type Options struct {
	Level      string `yaml:"level" json:"level" env:"LOG_LEVEL" default:"INFO"`
	Output     string `yaml:"output" json:"output" env:"LOG_OUTPUT" default:"STDOUT"`
	Format     string `yaml:"format" json:"format" env:"LOG_FORMAT" default:"json"`
	TimeFormat string `yaml:"time_format" json:"time_format" env:"LOG_TIME_FORMAT" default:"RFC3339"`
}

// Option configures the logger.
type Option func(*options)

// WithLevel overrides the configured level.
func WithLevel(level string) Option {
	return func(o *options) {
		o.level = parseLevel(level)
	}
}

// WithOutput overrides the configured writer.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithFormat selects "json" or "text" output.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithSource adds source file information to every record.
func WithSource() Option {
	return func(o *options) {
		o.addSource = true
	}
}

// WithEvents installs level hooks on the new logger.
func WithEvents(events Events) Option {
	return func(o *options) {
		o.events = events
	}
}

// NewDefault builds a JSON logger at INFO writing to stderr.
func NewDefault(opts ...Option) *Logger {
	cfg := Options{
		Level:      "INFO",
		Output:     "STDERR",
		Format:     "json",
		TimeFormat: "RFC3339",
	}
	return newLogger(cfg, opts...)
}

// NewDiscard builds a logger that drops everything. Handy in tests.
func NewDiscard() *Logger {
	return newLogger(Options{Level: "ERROR"}, WithOutput(io.Discard))
}

// NewStdLogger adapts the logger for APIs that want a *log.Logger.
func NewStdLogger(logger *Logger, level slog.Level) *log.Logger {
	return slog.NewLogLogger(logger.Logger.Handler(), level)
}

// NewFromEnv reads LOG_* variables under prefix.
func NewFromEnv(prefix string, opts ...Option) (*Logger, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing logger config: %w", err)
	}
	return newLogger(cfg, opts...), nil
}

func newLogger(cfg Options, opts ...Option) *Logger {
	o := &options{
		level:      parseLevel(cfg.Level),
		output:     parseOutput(cfg.Output),
		timeFormat: cfg.TimeFormat,
		format:     cfg.Format,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.output == nil {
		o.output = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       o.level,
		AddSource:   o.addSource,
		ReplaceAttr: timeAttr(o.timeFormat),
	}

	var handler slog.Handler
	switch o.format {
	case "text":
		handler = slog.NewTextHandler(o.output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(o.output, handlerOpts)
	}

	if !o.events.empty() {
		handler = &eventHandler{Handler: handler, events: o.events}
	}

	return &Logger{Logger: slog.New(handler)}
}

// WithEvents returns a logger sharing this logger's handler that also fires
// the given hooks. Hooks already installed keep firing.
func (l *Logger) WithEvents(events Events) *Logger {
	if events.empty() {
		return l
	}
	return &Logger{Logger: slog.New(&eventHandler{Handler: l.Handler(), events: events})}
}

// With returns a logger carrying the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// DebugContextf logs a debug message with formatting.
func (l *Logger) DebugContextf(ctx context.Context, format string, args ...any) {
	l.DebugContext(ctx, fmt.Sprintf(format, args...))
}

// InfoContextf logs an info message with formatting.
func (l *Logger) InfoContextf(ctx context.Context, format string, args ...any) {
	l.InfoContext(ctx, fmt.Sprintf(format, args...))
}

// WarnContextf logs a warning message with formatting.
func (l *Logger) WarnContextf(ctx context.Context, format string, args ...any) {
	l.WarnContext(ctx, fmt.Sprintf(format, args...))
}

// ErrorContextf logs an error message with formatting.
func (l *Logger) ErrorContextf(ctx context.Context, format string, args ...any) {
	l.ErrorContext(ctx, fmt.Sprintf(format, args...))
}
