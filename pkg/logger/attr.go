package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the emitting component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// ConnectionID records the registry connection identifier under the key "connection_id".
func ConnectionID(id string) slog.Attr {
	return slog.String("connection_id", id)
}

// Command records a dispatched command verb under the key "command".
func Command(verb string) slog.Attr {
	return slog.String("command", verb)
}

// Elapsed records a duration in milliseconds under the key "elapsed_ms".
func Elapsed(d time.Duration) slog.Attr {
	return slog.Int64("elapsed_ms", d.Milliseconds())
}
