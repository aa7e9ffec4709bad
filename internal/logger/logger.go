// Package logger provides leveled logging for bindays.
// Debug and info messages are printed to stderr only when verbose mode is
// enabled via the --verbose flag; warnings and errors are always printed so
// failed runs leave a trace in the hosting environment's logs.
//
// Long-running processes can enable timestamps with SetTimestamps.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is the severity of a message.
type Level string

// Levels, in increasing severity.
const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var (
	mu         sync.Mutex
	verbose    bool
	timestamps bool
	output     io.Writer = os.Stderr
	now                  = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetTimestamps prefixes every line with the UTC time when enabled.
func SetTimestamps(v bool) {
	mu.Lock()
	defer mu.Unlock()
	timestamps = v
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write(LevelDebug, format, args)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n%s=== %s ===\n", stamp(), name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write(LevelInfo, format, args)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	write(LevelWarn, format, args)
}

// Error prints an error message.
func Error(format string, args ...any) {
	write(LevelError, format, args)
}

func write(level Level, format string, args []any) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose && (level == LevelDebug || level == LevelInfo) {
		return
	}
	fmt.Fprintf(output, "%s[%s] %s\n", stamp(), level, fmt.Sprintf(format, args...))
}

// stamp returns the timestamp prefix (caller must hold lock).
func stamp() string {
	if !timestamps {
		return ""
	}
	return now().UTC().Format(time.RFC3339) + " "
}
