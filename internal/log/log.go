// Package log configures slog for genomos. It provides a JSON handler and a
// context aware wrapper, which adds attributes stored in a context.Context to
// every log record. This allows the command layer to tag all records of a
// single run (command name, pid, run id) without threading a logger around.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// New returns a JSON logger writing to stderr. With verbose true the level
// is Debug, otherwise Info.
func New(verbose bool) *slog.Logger {
	return NewAt(os.Stderr, verbose)
}

// NewAt is New writing to w instead of stderr.
func NewAt(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	base := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(NewContextHandler(base))
}

type ctxAttrsKey struct{}

// ContextAttrs returns a context carrying attrs. Attributes already present
// in ctx are kept, new ones are appended.
func ContextAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	prev, _ := ctx.Value(ctxAttrsKey{}).([]slog.Attr)
	merged := make([]slog.Attr, 0, len(prev)+len(attrs))
	merged = append(merged, prev...)
	merged = append(merged, attrs...)
	return context.WithValue(ctx, ctxAttrsKey{}, merged)
}

// ContextHandler is a slog.Handler which adds attributes stored via
// ContextAttrs to each record.
type ContextHandler struct {
	base slog.Handler
}

// NewContextHandler wraps base in a ContextHandler.
func NewContextHandler(base slog.Handler) ContextHandler {
	return ContextHandler{base: base}
}

func (h ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if attrs, ok := ctx.Value(ctxAttrsKey{}).([]slog.Attr); ok {
		record.AddAttrs(attrs...)
	}
	return h.base.Handle(ctx, record)
}

func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{base: h.base.WithAttrs(attrs)}
}

func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{base: h.base.WithGroup(name)}
}
