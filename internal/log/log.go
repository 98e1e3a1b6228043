// Package log is the process-wide structured logger.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	logger     zerolog.Logger
	loggerLock sync.RWMutex
	logFile    *os.File
)

func init() {
	logger = newLogger(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}, zerolog.WarnLevel)
}

// Options controls where log events go.
type Options struct {
	Level string // debug|info|warn|error
	File  string // append to this file instead of Output
	// Output is used when File is empty. nil discards everything.
	Output io.Writer
}

// Init replaces the global logger. Call Close on shutdown when File is set.
func Init(opts Options) error {
	var out io.Writer = io.Discard
	var f *os.File
	if opts.File != "" {
		var err error
		f, err = os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = f
	} else if opts.Output != nil {
		out = zerolog.ConsoleWriter{Out: opts.Output, TimeFormat: time.Kitchen}
	}

	loggerLock.Lock()
	defer loggerLock.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	logger = newLogger(out, parseLogLevel(opts.Level))
	return nil
}

// Close releases the log file, if any.
func Close() error {
	loggerLock.Lock()
	defer loggerLock.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logger = logger.Output(io.Discard)
	return err
}

func newLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("session", uuid.NewString()).
		Logger()
}

// parseLogLevel converts a string log level to zerolog.Level
func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning", "":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

func current() zerolog.Logger {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	return logger
}

func Debug() *zerolog.Event { l := current(); return l.Debug() }
func Info() *zerolog.Event  { l := current(); return l.Info() }
func Warn() *zerolog.Event  { l := current(); return l.Warn() }
func Error() *zerolog.Event { l := current(); return l.Error() }

// Logger returns the underlying zerolog.Logger for integrations
func Logger() zerolog.Logger {
	return current()
}
