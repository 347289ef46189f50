package vecsnap

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger wraps slog.Logger with vecsnap-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, the default handler is used: info-level messages are
// discarded and errors go to stderr as text.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogSave logs the outcome of a save operation.
func (l *Logger) LogSave(filename string, count int, err error) {
	if err != nil {
		l.Error("save failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.Info("snapshot saved",
			"filename", filename,
			"vectors", count,
		)
	}
}

// LogLoad logs the outcome of a load operation.
func (l *Logger) LogLoad(filename string, count int, err error) {
	if err != nil {
		l.Error("load failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.Info("snapshot loaded",
			"filename", filename,
			"vectors", count,
		)
	}
}

// defaultLogger is the single process-wide logger slot. Reconfiguration is
// last-writer-wins with no ordering guarantee relative to in-flight
// operations; prefer WithLogger on individual calls when that matters.
var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewLogger(nil))
}

// SetDefault replaces the process-wide logger used by calls that carry no
// explicit logger. Passing nil restores the silent-info/stderr-error
// default.
func SetDefault(l *Logger) {
	if l == nil {
		l = NewLogger(nil)
	}
	defaultLogger.Store(l)
}

// Default returns the current process-wide logger.
func Default() *Logger {
	return defaultLogger.Load()
}
