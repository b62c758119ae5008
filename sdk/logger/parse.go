package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

func parseOutput(o string) io.Writer {
	if strings.EqualFold(o, "STDERR") {
		return os.Stderr
	}
	return os.Stdout
}

// parseLevel accepts slog level names with optional offsets ("DEBUG",
// "warn", "INFO+2") and WARNING. Anything else is INFO.
func parseLevel(s string) slog.Level {
	if strings.EqualFold(s, "WARNING") {
		return slog.LevelWarn
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// timeAttr rewrites the top-level time attribute into layout: Unix,
// UnixMilli, RFC3339, RFC3339Nano or any time.Format layout.
func timeAttr(layout string) func([]string, slog.Attr) slog.Attr {
	if layout == "" {
		return nil
	}
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key != slog.TimeKey || len(groups) > 0 {
			return a
		}
		t := a.Value.Time()
		switch layout {
		case "Unix":
			return slog.Int64(slog.TimeKey, t.Unix())
		case "UnixMilli":
			return slog.Int64(slog.TimeKey, t.UnixMilli())
		case "RFC3339":
			return slog.String(slog.TimeKey, t.Format(time.RFC3339))
		case "RFC3339Nano":
			return slog.String(slog.TimeKey, t.Format(time.RFC3339Nano))
		}
		return slog.String(slog.TimeKey, t.Format(layout))
	}
}
