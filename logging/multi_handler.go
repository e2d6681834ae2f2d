package logging

import (
	"context"
	"errors"
	"log/slog"
	"slices"
)

// MultiHandler fans records out to several handlers. Each destination
// keeps its own level, so a record reaches only the handlers enabled for it.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(h.handlers, func(dest slog.Handler) bool {
		return dest.Enabled(ctx, level)
	})
}

// Handle delivers a clone of r to every enabled destination. A failing
// destination does not keep the record from the others; all failures are
// joined.
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, dest := range h.handlers {
		if !dest.Enabled(ctx, r.Level) {
			continue
		}
		if err := dest.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.derive(func(dest slog.Handler) slog.Handler { return dest.WithGroup(name) })
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.derive(func(dest slog.Handler) slog.Handler { return dest.WithAttrs(attrs) })
}

func (h *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, dest := range h.handlers {
		handlers[i] = fn(dest)
	}
	return &MultiHandler{handlers: handlers}
}
