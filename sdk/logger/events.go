package logger

import (
	"context"
	"log/slog"
	"time"
)

// Record is the view of a log entry handed to event hooks.
type Record struct {
	Time       time.Time
	Message    string
	Level      slog.Level
	Attributes map[string]any
}

// EventFn is called for every record at the matching level.
type EventFn func(ctx context.Context, r Record)

// Events holds one optional hook per level.
type Events struct {
	Debug EventFn
	Info  EventFn
	Warn  EventFn
	Error EventFn
}

func (e Events) empty() bool {
	return e.Debug == nil && e.Info == nil && e.Warn == nil && e.Error == nil
}

func (e Events) forLevel(level slog.Level) EventFn {
	switch {
	case level >= slog.LevelError:
		return e.Error
	case level >= slog.LevelWarn:
		return e.Warn
	case level >= slog.LevelInfo:
		return e.Info
	default:
		return e.Debug
	}
}

// eventHandler fires hooks for records the wrapped handler accepts.
type eventHandler struct {
	slog.Handler
	events Events
	attrs  []slog.Attr
}

func (h *eventHandler) Handle(ctx context.Context, r slog.Record) error {
	if fn := h.events.forLevel(r.Level); fn != nil {
		attrs := make(map[string]any, r.NumAttrs()+len(h.attrs))
		for _, a := range h.attrs {
			attrs[a.Key] = a.Value.Any()
		}
		r.Attrs(func(a slog.Attr) bool {
			attrs[a.Key] = a.Value.Any()
			return true
		})
		fn(ctx, Record{
			Time:       r.Time,
			Message:    r.Message,
			Level:      r.Level,
			Attributes: attrs,
		})
	}
	return h.Handler.Handle(ctx, r)
}

func (h *eventHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &eventHandler{Handler: h.Handler.WithAttrs(attrs), events: h.events, attrs: merged}
}

func (h *eventHandler) WithGroup(name string) slog.Handler {
	return &eventHandler{Handler: h.Handler.WithGroup(name), events: h.events, attrs: h.attrs}
}
