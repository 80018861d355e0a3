// logging/logging.go
package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gewnthar/flightops/config"
)

// Logger wraps slog with the rotating file it writes to, if any.
type Logger struct {
	*slog.Logger
	LogFile string
	closer  io.Closer
}

// New builds the application logger. Output always goes to stderr; when
// cfg.File is set it is also written to a size-rotated file.
func New(cfg config.LogConfig) (*Logger, error) {
	var w io.Writer = os.Stderr
	l := &Logger{}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB, // MB
			MaxBackups: cfg.MaxBackups,
			MaxAge:     14,
			Compress:   true,
		}
		w = io.MultiWriter(os.Stderr, lj)
		l.LogFile = lj.Filename
		l.closer = lj
	}

	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	l.Logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))

	// Route stray stdlib log output (chi's request logger, third-party
	// packages) through the same handler.
	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(l.Handler(), slog.LevelInfo).Writer())
	return l, nil
}

// ParseLevel maps a config string to a slog level; empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%s: invalid log level", level)
}

// Close flushes and closes the rotating log file.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
