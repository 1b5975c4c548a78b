package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel represents logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelInfo:
		return "info"
	case LogLevelDebug:
		return "debug"
	default:
		return "warn"
	}
}

// ToSlogLevel converts LogLevel to slog.Level
func (l LogLevel) ToSlogLevel() slog.Level {
	switch l {
	case LogLevelError:
		return slog.LevelError
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

// ParseLevel maps a config string to a LogLevel, unknown values fall back to warn
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LogLevelError
	case "info":
		return LogLevelInfo
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelWarn
	}
}

// Logger wraps slog with the component helpers used across curlfmt
type Logger struct {
	*slog.Logger
	level LogLevel
}

// New creates a logger writing text or JSON records to w.
// Reports go to stdout, so the CLI passes stderr here.
func New(w io.Writer, level LogLevel, format string) *Logger {
	opts := &slog.HandlerOptions{
		Level: level.ToSlogLevel(),
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
		level:  level,
	}
}

// Discard returns a logger that drops every record, used as the zero-config default
func Discard() *Logger {
	return New(io.Discard, LogLevelError, "text")
}

// Level returns the current log level
func (l *Logger) Level() LogLevel {
	return l.level
}

// WithComponent returns a logger with component context
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", component),
		level:  l.level,
	}
}

// WithCommand returns a logger carrying the parsed request context
func (l *Logger) WithCommand(method, url string) *Logger {
	return &Logger{
		Logger: l.Logger.With("method", method, "url", url),
		level:  l.level,
	}
}

var defaultLogger = New(os.Stderr, LogLevelWarn, "text")

// SetDefault sets the global default logger
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Default returns the global logger
func Default() *Logger {
	return defaultLogger
}
