package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes driver events to an slog.Logger.
// Useful for development when you want to see connection events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Failures log at Warn level,
// everything else at Debug.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("conn_id", event.ConnectionID),
		slog.String("category", event.Category.String()),
	}

	if event.Room != "" {
		attrs = append(attrs, slog.String("room", event.Room))
	}

	level := slog.LevelDebug

	// Add type-specific attributes
	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("from", event.StateChange.From),
			slog.String("to", event.StateChange.To),
		)
	case event.Failure != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("code", event.Failure.Code),
			slog.Bool("fatal", event.Failure.Fatal),
		)
		if event.Failure.Message != "" {
			attrs = append(attrs, slog.String("message", event.Failure.Message))
		}
	case event.Auth != nil:
		attrs = append(attrs,
			slog.String("step", event.Auth.Step),
			slog.Bool("token_present", event.Auth.TokenPresent),
		)
	}

	a.logger.LogAttrs(context.Background(), level, "connection event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
