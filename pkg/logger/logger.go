// Package logger provides leveled, prefix-aware logging for ccrefactor
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Level represents the logging level
type Level int

// LoggerInterface defines the logging interface accepted by library components
type LoggerInterface interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a configuration string into a Level, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger represents a structured logger implementation
type Logger struct {
	level     Level
	writers   []io.Writer
	prefix    string
	timestamp bool
}

// Config holds logger configuration
type Config struct {
	Level     Level
	LogFile   string
	Timestamp bool
	Prefix    string
	// Output replaces stderr as the console writer when set
	Output io.Writer
}

// New creates a new logger with the given configuration
func New(config Config) (*Logger, error) {
	writers := []io.Writer{}

	switch {
	case config.Output != nil:
		writers = append(writers, config.Output)
	case !testing.Testing():
		// stdout carries reports and JSON, so logs go to stderr
		writers = append(writers, os.Stderr)
	}

	logger := &Logger{
		level:     config.Level,
		prefix:    config.Prefix,
		timestamp: config.Timestamp,
		writers:   writers,
	}

	if config.LogFile != "" {
		logDir := filepath.Dir(config.LogFile)
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}

		file, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", config.LogFile, err)
		}

		logger.writers = append(logger.writers, file)
	}

	return logger, nil
}

// NewDefault creates a logger with default settings
func NewDefault() *Logger {
	logger, _ := New(Config{ //nolint:errcheck // Default logger creation should not fail with valid config
		Level:     LevelWarn,
		Timestamp: true,
		Prefix:    "ccrefactor",
	})
	return logger
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{level: LevelError + 1}
}

// OrNop returns l, or a discarding logger when l is nil
func OrNop(l LoggerInterface) LoggerInterface {
	if l == nil {
		return Nop()
	}
	return l
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// GetLevel returns the current logging level
func (l *Logger) GetLevel() Level {
	return l.level
}

// log writes a log message at the specified level
func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level || len(l.writers) == 0 {
		return
	}

	message := fmt.Sprintf(format, args...)

	var parts []string

	if l.timestamp {
		parts = append(parts, time.Now().Format("2006-01-02 15:04:05"))
	}

	parts = append(parts, fmt.Sprintf("[%s]", level.String()))

	if l.prefix != "" {
		parts = append(parts, fmt.Sprintf("[%s]", l.prefix))
	}

	parts = append(parts, message)

	logLine := strings.Join(parts, " ") + "\n"

	for _, writer := range l.writers {
		_, _ = writer.Write([]byte(logLine)) //nolint:errcheck // Logging output errors are not critical
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// WithPrefix creates a new logger with an additional prefix
func (l *Logger) WithPrefix(prefix string) *Logger {
	newLogger := *l
	if l.prefix != "" {
		newLogger.prefix = l.prefix + ":" + prefix
	} else {
		newLogger.prefix = prefix
	}
	return &newLogger
}

// Global logger instance, used by the CLI only
var globalLogger = NewDefault()

// Debug logs a debug message using the global logger
func Debug(format string, args ...interface{}) {
	globalLogger.Debug(format, args...)
}

func Info(format string, args ...interface{}) {
	globalLogger.Info(format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.Warn(format, args...)
}

func Error(format string, args ...interface{}) {
	globalLogger.Error(format, args...)
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalLogger = logger
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	return globalLogger
}
