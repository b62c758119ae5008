package dbclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/sdk/logger"
)

// EventType names a subscribable event; the same names are the accepted
// values of Config.Log.
type EventType string

const (
	EventQuery EventType = "query"
	EventInfo  EventType = "info"
	EventWarn  EventType = "warn"
	EventError EventType = "error"
)

const eventTarget = "bookshare"

// ErrEventDisabled is returned when subscribing to a level Config.Log does
// not list.
var ErrEventDisabled = errors.New("event not enabled in log config")

// QueryEvent describes one statement sent to the database.
type QueryEvent struct {
	Timestamp time.Time
	Query     string
	Params    string
	Duration  time.Duration
	Target    string
}

// LogEvent describes one log record.
type LogEvent struct {
	Timestamp time.Time
	Message   string
	Target    string
}

type eventBus struct {
	enabled map[EventType]bool

	mu      sync.RWMutex
	queries []func(QueryEvent)
	logs    map[EventType][]func(LogEvent)
}

func newEventBus(levels []string) (*eventBus, error) {
	parsed, err := parseLevels(levels)
	if err != nil {
		return nil, err
	}
	b := &eventBus{
		enabled: make(map[EventType]bool, len(parsed)),
		logs:    map[EventType][]func(LogEvent){},
	}
	for _, l := range parsed {
		b.enabled[l] = true
	}
	return b, nil
}

// OnQuery subscribes fn to query events. Subscribers run synchronously on
// the querying goroutine.
func (c *Client) OnQuery(fn func(QueryEvent)) error {
	b := c.events
	if !b.enabled[EventQuery] {
		return fmt.Errorf("%w: %s", ErrEventDisabled, EventQuery)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queries = append(b.queries, fn)
	return nil
}

// OnLog subscribes fn to log records at level: info, warn or error.
func (c *Client) OnLog(level EventType, fn func(LogEvent)) error {
	b := c.events
	if level == EventQuery {
		return fmt.Errorf("use OnQuery for %s events", EventQuery)
	}
	if !b.enabled[level] {
		return fmt.Errorf("%w: %s", ErrEventDisabled, level)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logs[level] = append(b.logs[level], fn)
	return nil
}

// query is the postgresdb.EventQueryTracer callback.
func (b *eventBus) query(t postgresdb.QueryTrace) {
	if !b.enabled[EventQuery] {
		return
	}
	b.mu.RLock()
	fns := b.queries
	b.mu.RUnlock()
	if len(fns) == 0 {
		return
	}

	ev := QueryEvent{
		Timestamp: t.Start,
		Query:     t.SQL,
		Params:    encodeParams(t.Args),
		Duration:  t.Duration,
		Target:    eventTarget + ".postgres",
	}
	for _, fn := range fns {
		fn(ev)
	}
}

func encodeParams(args []any) string {
	if len(args) == 0 {
		return "[]"
	}
	b, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprint(args)
	}
	return string(b)
}

func (b *eventBus) emit(level EventType, r logger.Record) {
	b.mu.RLock()
	fns := b.logs[level]
	b.mu.RUnlock()
	if len(fns) == 0 {
		return
	}

	target := eventTarget
	if model, ok := r.Attributes["model"].(string); ok && model != "" {
		target += "." + strings.ToLower(model)
	}
	ev := LogEvent{Timestamp: r.Time, Message: r.Message, Target: target}
	for _, fn := range fns {
		fn(ev)
	}
}

// logHooks returns logger hooks for the enabled log levels only.
func (b *eventBus) logHooks() logger.Events {
	hook := func(level EventType) logger.EventFn {
		if !b.enabled[level] {
			return nil
		}
		return func(ctx context.Context, r logger.Record) {
			b.emit(level, r)
		}
	}
	return logger.Events{
		Info:  hook(EventInfo),
		Warn:  hook(EventWarn),
		Error: hook(EventError),
	}
}
