package logger

import (
	"io"
	"log/slog"
	"os"
)

// Option configures a logger built by New.
type Option func(*options)

type options struct {
	out        io.Writer
	sentry     *SentryConfig
	extractors []ContextExtractor
	level      slog.Level
	text       bool
}

// WithLevel sets the minimum level written to the output.
// Default: slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithText switches the output from JSON to logfmt-style text,
// which reads better in a local terminal.
func WithText() Option {
	return func(o *options) {
		o.text = true
	}
}

// WithOutput sets the destination. Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.out = w
		}
	}
}

// WithExtractors adds context extractors applied to every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// WithSentry also forwards warnings and errors to Sentry.
// An empty DSN leaves Sentry disabled.
func WithSentry(cfg SentryConfig) Option {
	return func(o *options) {
		if cfg.DSN != "" {
			o.sentry = &cfg
		}
	}
}

// New creates a structured logger. Without options it writes JSON
// at info level to stdout.
func New(opts ...Option) *slog.Logger {
	o := options{out: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&o)
	}

	handlerOpts := &slog.HandlerOptions{Level: o.level}
	var base slog.Handler
	if o.text {
		base = slog.NewTextHandler(o.out, handlerOpts)
	} else {
		base = slog.NewJSONHandler(o.out, handlerOpts)
	}

	if o.sentry != nil {
		if sh, err := newSentryHandler(*o.sentry); err != nil {
			slog.New(base).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		} else {
			base = newMultiHandler(base, sh)
		}
	}

	return slog.New(NewLogHandlerDecorator(base, o.extractors...))
}
