package postgresdb

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// https://github.com/jackc/pgx/discussions/1677#discussioncomment-8815982
type MultiQueryTracer struct {
	Tracers []pgx.QueryTracer
}

func NewMultiQueryTracer(tracers ...pgx.QueryTracer) *MultiQueryTracer {
	return &MultiQueryTracer{Tracers: tracers}
}

func (m *MultiQueryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range m.Tracers {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (m *MultiQueryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range m.Tracers {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

// https://github.com/jackc/pgx/issues/1061#issuecomment-1186250809
type LoggingQueryTracer struct {
	logger *slog.Logger
}

func NewLoggingQueryTracer(logger *slog.Logger) *LoggingQueryTracer {
	return &LoggingQueryTracer{logger: logger}
}

var (
	replaceTabs                      = regexp.MustCompile(`\t+`)
	replaceSpacesBeforeOpeningParens = regexp.MustCompile(`\s+\(`)
	replaceSpacesAfterOpeningParens  = regexp.MustCompile(`\(\s+`)
	replaceSpacesBeforeClosingParens = regexp.MustCompile(`\s+\)`)
	replaceSpacesAfterClosingParens  = regexp.MustCompile(`\)\s+`)
	replaceSpaces                    = regexp.MustCompile(`\s+`)
)

// PrettySQL collapses a statement onto one line.
func PrettySQL(sql string) string {
	pretty := strings.ReplaceAll(sql, "\n", " ")
	pretty = replaceTabs.ReplaceAllString(pretty, "")
	pretty = replaceSpacesBeforeOpeningParens.ReplaceAllString(pretty, " (")
	pretty = replaceSpacesAfterOpeningParens.ReplaceAllString(pretty, "(")
	pretty = replaceSpacesAfterClosingParens.ReplaceAllString(pretty, ") ")
	pretty = replaceSpacesBeforeClosingParens.ReplaceAllString(pretty, ")")
	pretty = replaceSpaces.ReplaceAllString(pretty, " ")

	return strings.TrimSpace(pretty)
}

type traceKey struct{}

type traceStart struct {
	at   time.Time
	sql  string
	args []any
}

func (l *LoggingQueryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	l.logger.Debug("query start",
		slog.String("sql", PrettySQL(data.SQL)),
		slog.Any("args", data.Args),
	)
	return context.WithValue(ctx, traceKey{}, traceStart{at: time.Now(), sql: data.SQL, args: data.Args})
}

func (l *LoggingQueryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	var took time.Duration
	if st, ok := ctx.Value(traceKey{}).(traceStart); ok {
		took = time.Since(st.at)
	}

	// Failure
	if data.Err != nil {
		l.logger.Error("query end",
			slog.String("error", data.Err.Error()),
			slog.String("command_tag", data.CommandTag.String()),
			slog.Duration("took", took),
		)
		return
	}

	// Success
	l.logger.Debug("query end",
		slog.String("command_tag", data.CommandTag.String()),
		slog.Duration("took", took),
	)
}

// QueryTrace describes one finished statement.
type QueryTrace struct {
	Start    time.Time
	SQL      string
	Args     []any
	Duration time.Duration
	Rows     int64
	Err      error
}

// EventQueryTracer calls a function after every statement.
type EventQueryTracer struct {
	fn func(QueryTrace)
}

func NewEventQueryTracer(fn func(QueryTrace)) *EventQueryTracer {
	return &EventQueryTracer{fn: fn}
}

func (e *EventQueryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, eventKey{}, traceStart{at: time.Now(), sql: data.SQL, args: data.Args})
}

func (e *EventQueryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	st, ok := ctx.Value(eventKey{}).(traceStart)
	if !ok {
		return
	}
	e.fn(QueryTrace{
		Start:    st.at,
		SQL:      PrettySQL(st.sql),
		Args:     st.args,
		Duration: time.Since(st.at),
		Rows:     data.CommandTag.RowsAffected(),
		Err:      data.Err,
	})
}

type eventKey struct{}
