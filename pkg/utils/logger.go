package utils

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"

	"backyard-leads/pkg/config"
)

// NewLogger builds the application logger: a tinted console handler, plus a
// Fluent Bit forwarder when log shipping is enabled in config.
func NewLogger(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.LogLevel)

	var handler slog.Handler = tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: "2006-01-02 15:04:05",
	})

	if cfg.FluentEnabled {
		fl, err := fluent.New(fluent.Config{
			FluentHost: cfg.FluentHost,
			FluentPort: cfg.FluentPort,
			Async:      true,
		})
		if err != nil {
			log.Printf("Warning: could not connect to Fluent Bit at %s:%d: %v. Logging to stdout only.", cfg.FluentHost, cfg.FluentPort, err)
		} else {
			handler = multiHandler{handler, &fluentHandler{client: fl, level: level}}
		}
	}

	return slog.New(handler)
}

func parseLevel(name string) slog.Level {
	switch name {
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

// multiHandler fans every record out to all wrapped handlers
type multiHandler []slog.Handler

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range m {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	wrapped := make(multiHandler, len(m))
	for i, h := range m {
		wrapped[i] = h.WithAttrs(attrs)
	}
	return wrapped
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	wrapped := make(multiHandler, len(m))
	for i, h := range m {
		wrapped[i] = h.WithGroup(name)
	}
	return wrapped
}

// fluentHandler ships records to Fluent Bit as flat maps under a fixed tag
type fluentHandler struct {
	client *fluent.Fluent
	level  slog.Level
	attrs  []slog.Attr
}

const fluentTag = "backyard-leads.web"

func (f *fluentHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= f.level
}

func (f *fluentHandler) Handle(_ context.Context, record slog.Record) error {
	data := map[string]interface{}{
		"message":   record.Message,
		"level":     record.Level.String(),
		"timestamp": record.Time.Format(time.RFC3339),
	}
	for _, attr := range f.attrs {
		data[attr.Key] = attr.Value.Resolve().Any()
	}
	record.Attrs(func(attr slog.Attr) bool {
		data[attr.Key] = attr.Value.Resolve().Any()
		return true
	})
	return f.client.Post(fluentTag, data)
}

func (f *fluentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(f.attrs)+len(attrs))
	merged = append(merged, f.attrs...)
	merged = append(merged, attrs...)
	return &fluentHandler{client: f.client, level: f.level, attrs: merged}
}

func (f *fluentHandler) WithGroup(string) slog.Handler {
	// Flat records are what the downstream pipeline expects
	return f
}
