package logger

import "log/slog"

// NewNope returns a logger that discards everything.
// The app uses it until a real logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
