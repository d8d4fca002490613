package marquee

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	loggerMu sync.RWMutex
	logger   *slog.Logger
	levelVar = &slog.LevelVar{}
)

func init() {
	levelVar.Set(slog.LevelWarn)
	logger = NewLogger(os.Stderr, levelVar)
}

// NewLogger builds a JSON slog logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: false,
	}))
}

// Logger returns the package logger used by sprites, groups and menus that
// were not given one explicitly.
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogger replaces the package logger. A nil logger discards output.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// SetLogLevel sets the level of the default package logger.
func SetLogLevel(level slog.Level) {
	levelVar.Set(level)
}

// SetRawLogLevel parses a level name ("debug", "info", "warn", "error") and
// applies it. Unknown names select info.
func SetRawLogLevel(rawLevel string) {
	var level slog.Level

	switch strings.ToLower(rawLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	levelVar.Set(level)
}
