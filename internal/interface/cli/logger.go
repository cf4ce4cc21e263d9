package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// LogLevel controls which messages reach the output
type LogLevel int

const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// ParseLogLevel parses a level name, defaulting to warn
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off":
		return LogLevelOff
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	case "info":
		return LogLevelInfo
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelWarn
	}
}

// Logger provides centralized logging with level control
type Logger struct {
	mu       sync.RWMutex
	minLevel LogLevel
	output   io.Writer
}

// NewLogger creates a new logger with the specified minimum level
func NewLogger(minLevel LogLevel, output io.Writer) *Logger {
	return &Logger{minLevel: minLevel, output: output}
}

// SetLevel changes the minimum log level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LogLevelDebug, "DEBUG", format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LogLevelInfo, "INFO", format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LogLevelWarn, "WARN", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LogLevelError, "ERROR", format, args...)
}

func (l *Logger) log(level LogLevel, tag, format string, args ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if level > l.minLevel || l.minLevel == LogLevelOff {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(l.output, "%s: %s", tag, msg)
}
