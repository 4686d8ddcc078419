// Package logger provides leveled diagnostic logging for seek.
//
// The logger writes timestamped lines to a writer (usually os.Stderr) and,
// when a log directory is configured, mirrors them to a timestamped per-run
// log file. It is thread-safe and filters messages by level.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Log level constants for filtering
const (
	levelDebug int = 0
	levelInfo  int = 1
	levelWarn  int = 2
	levelError int = 3
)

// Logger writes leveled, timestamped messages to a writer and optionally to
// a per-run log file. A nil *Logger discards everything, so call sites never
// need to guard against it.
type Logger struct {
	writer   io.Writer
	file     *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// New creates a Logger writing to the provided writer. If writer is nil,
// console output is discarded. logLevel is one of debug, info, warn, error
// (case-insensitive); empty or invalid levels default to "info".
func New(writer io.Writer, logLevel string) *Logger {
	return &Logger{
		writer:   writer,
		logLevel: normalizeLogLevel(logLevel),
	}
}

// NewWithFile creates a Logger that additionally mirrors output to a
// timestamped log file in logDir, creating the directory if needed. runID
// is embedded in the file name so concurrent runs never collide.
func NewWithFile(writer io.Writer, logLevel, logDir, runID string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("seek-%s-%s.log", timestamp, runID))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	return &Logger{
		writer:   writer,
		file:     file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}, nil
}

// RunFile returns the path of the per-run log file, or "" when file logging
// is disabled.
func (l *Logger) RunFile() string {
	if l == nil {
		return ""
	}
	return l.runFile
}

// Close closes the per-run log file if one is open.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.file.Close()
	l.file = nil
	return err
}

// Debug logs a message at debug level.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log("debug", format, args...)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log("info", format, args...)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log("warn", format, args...)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log("error", format, args...)
}

func (l *Logger) log(level, format string, args ...interface{}) {
	if l == nil || !l.shouldLog(level) {
		return
	}

	timestamp := time.Now().Format("15:04:05")
	line := fmt.Sprintf("[%s] %-5s %s\n", timestamp, strings.ToUpper(level), fmt.Sprintf(format, args...))

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writer != nil {
		fmt.Fprint(l.writer, line)
	}
	if l.file != nil {
		fmt.Fprint(l.file, line)
	}
}

// shouldLog checks if a message at the given level should be logged.
func (l *Logger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(l.logLevel)
}

// normalizeLogLevel converts a log level string to lowercase and validates
// it, defaulting to "info".
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}
