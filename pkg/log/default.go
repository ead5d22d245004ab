package log

import (
	"os"
	"sync/atomic"
)

var std atomic.Pointer[Logger]

func init() {
	std.Store(New(os.Stderr, WithTimestamp(true), WithColor(ColorAuto)))
}

// Default returns the process-wide logger.
func Default() *Logger {
	return std.Load()
}

// SetDefault replaces the process-wide logger and returns the previous one.
// Call it during initialization, before concurrent logging starts. A nil
// logger is ignored.
func SetDefault(l *Logger) *Logger {
	if l == nil {
		return std.Load()
	}
	return std.Swap(l)
}

// Trace logs at LevelTrace through the default logger.
func Trace(template string, args ...any) { _ = Default().log(LevelTrace, template, args) }

// Debug logs at LevelDebug through the default logger.
func Debug(template string, args ...any) { _ = Default().log(LevelDebug, template, args) }

// Info logs at LevelInfo through the default logger.
func Info(template string, args ...any) { _ = Default().log(LevelInfo, template, args) }

// Warn logs at LevelWarn through the default logger.
func Warn(template string, args ...any) { _ = Default().log(LevelWarn, template, args) }

// Error logs at LevelError through the default logger.
func Error(template string, args ...any) { _ = Default().log(LevelError, template, args) }

// Critical logs at LevelCritical through the default logger.
func Critical(template string, args ...any) { _ = Default().log(LevelCritical, template, args) }
