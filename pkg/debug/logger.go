// Package debug provides a leveled diagnostic logger. The audio path logs
// note events through it at LogLevelDebug, which is disabled by default; the
// level gate runs before any formatting so a disabled logger costs one
// atomic load.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// LogLevel represents the severity of a log message.
type LogLevel int32

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
	// LogLevelOff disables all logging.
	LogLevelOff
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes tagged, leveled messages to a single writer.
type Logger struct {
	mu     sync.Mutex
	output io.Writer
	level  atomic.Int32
}

// New creates a logger writing to output at the given level.
func New(output io.Writer, level LogLevel) *Logger {
	l := &Logger{output: output}
	l.level.Store(int32(level))
	return l
}

// SetLevel changes the minimum level that will be written.
func (l *Logger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
}

// Level returns the current minimum level.
func (l *Logger) Level() LogLevel {
	return LogLevel(l.level.Load())
}

// Enabled reports whether a message at level would be written.
func (l *Logger) Enabled(level LogLevel) bool {
	return int32(level) >= l.level.Load()
}

func (l *Logger) logf(level LogLevel, tag, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.output, "[%s] %s: ", level, tag)
	fmt.Fprintf(l.output, format, args...)
	fmt.Fprintln(l.output)
}

// Debugf logs at LogLevelDebug.
func (l *Logger) Debugf(tag, format string, args ...any) {
	l.logf(LogLevelDebug, tag, format, args...)
}

// Infof logs at LogLevelInfo.
func (l *Logger) Infof(tag, format string, args ...any) {
	l.logf(LogLevelInfo, tag, format, args...)
}

// Warnf logs at LogLevelWarn.
func (l *Logger) Warnf(tag, format string, args ...any) {
	l.logf(LogLevelWarn, tag, format, args...)
}

// Errorf logs at LogLevelError.
func (l *Logger) Errorf(tag, format string, args ...any) {
	l.logf(LogLevelError, tag, format, args...)
}

var defaultLogger = New(os.Stderr, LogLevelOff)

// Default returns the process-wide logger. It starts at LogLevelOff.
func Default() *Logger {
	return defaultLogger
}

// SetLevel changes the default logger's level.
func SetLevel(level LogLevel) {
	defaultLogger.SetLevel(level)
}

// Debugf logs to the default logger at LogLevelDebug.
func Debugf(tag, format string, args ...any) {
	defaultLogger.Debugf(tag, format, args...)
}

// Infof logs to the default logger at LogLevelInfo.
func Infof(tag, format string, args ...any) {
	defaultLogger.Infof(tag, format, args...)
}

// Warnf logs to the default logger at LogLevelWarn.
func Warnf(tag, format string, args ...any) {
	defaultLogger.Warnf(tag, format, args...)
}

// Errorf logs to the default logger at LogLevelError.
func Errorf(tag, format string, args ...any) {
	defaultLogger.Errorf(tag, format, args...)
}
