package logger

import (
	"context"
	"log/slog"
	"runtime"
)

type conditionalSourceHandler struct {
	handler  slog.Handler
	minLevel slog.Level
}

// NewConditionalSourceHandler wraps a handler so that records at or above
// minLevel carry a source attribute. The wrapped handler must not add source
// itself.
func NewConditionalSourceHandler(handler slog.Handler, minLevel slog.Level) slog.Handler {
	return &conditionalSourceHandler{
		handler:  handler,
		minLevel: minLevel,
	}
}

func (h *conditionalSourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.minLevel {
		if r.PC != 0 {
			fs := runtime.CallersFrames([]uintptr{r.PC})
			f, _ := fs.Next()
			r.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
				Function: f.Function,
				File:     f.File,
				Line:     f.Line,
			}))
		}
	}
	return h.handler.Handle(ctx, r)
}

func (h *conditionalSourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &conditionalSourceHandler{handler: h.handler.WithAttrs(attrs), minLevel: h.minLevel}
}

func (h *conditionalSourceHandler) WithGroup(name string) slog.Handler {
	return &conditionalSourceHandler{handler: h.handler.WithGroup(name), minLevel: h.minLevel}
}

func (h *conditionalSourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}
