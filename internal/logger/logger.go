// Package logger provides verbose logging for digestpdf.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow the merge and summary
// pipeline. Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	log               = build(os.Stderr, false)
)

func build(w io.Writer, v bool) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	level := zerolog.ErrorLevel
	if v {
		level = zerolog.DebugLevel
	}
	return zerolog.New(cw).Level(level)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	log = build(output, verbose)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = build(output, verbose)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug().Msgf(format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Info().Msgf(format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warn().Msgf(format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Error().Msgf(format, args...)
}

// File prints a per-file debug message tagged with the file's relative path.
func File(rel, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug().Str("file", rel).Msgf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
