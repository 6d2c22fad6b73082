// ABOUTME: Package-level structured logger shared by the CLI, MCP server, and publisher.
// ABOUTME: Writes to stderr so the MCP stdio transport on stdout stays clean.
package logutil

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "blogpub", ReportTimestamp: true, Level: log.InfoLevel})
	mu     sync.RWMutex
)

// SetLevel adjusts the global log level from its name (debug, info, warn, error).
// Unknown names fall back to info.
func SetLevel(name string) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		level = log.InfoLevel
	}
	mu.Lock()
	defer mu.Unlock()
	logger.SetLevel(level)
}

// SetOutput redirects log output. Tests use this to silence or capture logs.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// Logger returns the shared logger.
func Logger() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debugf logs a debug message.
func Debugf(format string, args ...any) {
	Logger().Debugf(format, args...)
}

// Infof logs an informational message.
func Infof(format string, args ...any) {
	Logger().Infof(format, args...)
}

// Warnf logs a warning.
func Warnf(format string, args ...any) {
	Logger().Warnf(format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...any) {
	Logger().Errorf(format, args...)
}
