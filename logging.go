package ringtext

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger builds the pass logger: one text line per event with an
// ISO-8601 timestamp, severity, and message, mirrored to console and,
// when logPath is non-empty, a persisted log file. The returned closer
// owns the file handle.
func NewLogger(console io.Writer, logPath string) (*slog.Logger, io.Closer, error) {
	var closer io.Closer = io.NopCloser(nil)
	w := console
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, resourceError("log", err)
		}
		w = io.MultiWriter(console, f)
		closer = f
	}
	return slog.New(slog.NewTextHandler(w, nil)), closer, nil
}

// ensureLogger substitutes a discarding logger for nil, so library
// callers may leave Generator.Logger unset.
func ensureLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}
