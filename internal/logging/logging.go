// Package logging configures zerolog for tuidock. Log lines always land in an
// in-memory ring the log viewer reads; a file is optional.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBufferSize is the ring size used until Setup is called.
const DefaultBufferSize = 500

var (
	mu     sync.Mutex
	base   = zerolog.Nop()
	buffer = NewBuffer(DefaultBufferSize)
	closer io.Closer
	ready  bool
)

// Setup configures the global logger. level is a zerolog level name; file,
// when not empty, receives a copy of every line. The terminal itself is left
// alone because the TUI owns it.
func Setup(level, file string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if level == "" {
		lvl = zerolog.InfoLevel
	}

	mu.Lock()
	defer mu.Unlock()

	if closer != nil {
		_ = closer.Close()
		closer = nil
	}

	w := io.Discard
	if file != "" {
		f, err := openLogFile(file)
		if err != nil {
			return err
		}
		closer = f
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339, NoColor: true}
	}

	zerolog.SetGlobalLevel(lvl)
	base = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	log.Logger = base.Hook(bufferHook{buf: buffer})
	ready = true

	log.Debug().Str("level", lvl.String()).Str("file", file).Msg("logger initialized")
	return nil
}

// Close releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	base = zerolog.Nop()
	log.Logger = base
	ready = false
	return err
}

// Ensure runs Setup unless the logger is already configured, so every
// workspace in a process shares the first configuration.
func Ensure(level, file string) error {
	mu.Lock()
	done := ready
	mu.Unlock()
	if done {
		return nil
	}
	return Setup(level, file)
}

// For returns a logger tagged with component whose lines also reach the
// in-memory buffer.
func For(component string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base.With().Str("component", component).Logger().
		Hook(bufferHook{buf: buffer, component: component})
}

// Lines returns the shared buffer the log viewer reads.
func Lines() *Buffer {
	return buffer
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	// #nosec G304 - the path comes from the user's config
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// Timed starts timing operation and returns the function that reports its
// outcome. A nil error logs done at debug level, anything else logs failed
// at error level with the error attached.
func Timed(logger zerolog.Logger, operation, done, failed string) func(error) {
	start := time.Now()
	logger.Trace().Str("operation", operation).Msg(operation + " started")
	return func(err error) {
		if err != nil {
			logger.Error().Err(err).
				Str("operation", operation).
				Dur("elapsed", time.Since(start)).
				Msg(failed)
			return
		}
		logger.Debug().
			Str("operation", operation).
			Dur("elapsed", time.Since(start)).
			Msg(done)
	}
}
