// Package log is Javelin's leveled logger.
//
// Messages use {}-style templates (see Format) and are filtered against a
// threshold before any formatting happens. A Logger serializes the
// format-and-write step, so concurrent callers never produce torn lines.
//
//	logger := log.New(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Info("Vec2 a: ({}, {})", a.X, a.Y)
//
// Package-level functions log through a process-wide default logger that
// writes to stderr at LevelInfo.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/colorprofile"
)

// TimeLayout is the timestamp layout used when timestamps are enabled.
const TimeLayout = "2006-01-02 15:04:05.000"

// ErrDiscarding is returned by Logger.Err after the destination failed and the
// logger switched to discarding output.
var ErrDiscarding = errors.New("log: destination failed")

// ColorMode selects whether level labels are styled.
type ColorMode int

const (
	// ColorNever writes plain text.
	ColorNever ColorMode = iota
	// ColorAuto styles labels and lets the destination's terminal
	// capabilities decide what survives.
	ColorAuto
	// ColorAlways writes ANSI styles unconditionally.
	ColorAlways
)

// ParseColorMode parses "never", "auto" or "always".
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "never", "off", "false", "no":
		return ColorNever, nil
	case "auto", "":
		return ColorAuto, nil
	case "always", "on", "true", "yes":
		return ColorAlways, nil
	}
	return ColorNever, fmt.Errorf("log: unknown color mode %q", s)
}

// Logger writes leveled messages to a single destination.
type Logger struct {
	level  atomic.Int32
	strict bool

	mu         sync.Mutex
	out        io.Writer
	name       string
	timestamps bool
	source     bool
	color      ColorMode
	styles     *styles
	now        func() time.Time
	onError    func(error)
	failed     bool
}

// Option configures a Logger.
type Option func(*Logger)

// WithLevel sets the minimum level that is written.
func WithLevel(l Level) Option {
	return func(lg *Logger) { lg.level.Store(int32(l)) }
}

// WithName adds a "[name]" field to every line.
func WithName(name string) Option {
	return func(lg *Logger) { lg.name = name }
}

// WithTimestamp enables the leading timestamp field.
func WithTimestamp(on bool) Option {
	return func(lg *Logger) { lg.timestamps = on }
}

// WithSource adds the caller's file:line to every line.
func WithSource(on bool) Option {
	return func(lg *Logger) { lg.source = on }
}

// WithColor selects label styling.
func WithColor(mode ColorMode) Option {
	return func(lg *Logger) { lg.color = mode }
}

// WithStrict makes template errors panic instead of being reported inline.
// Intended for development builds and tests.
func WithStrict(on bool) Option {
	return func(lg *Logger) { lg.strict = on }
}

// WithErrorHandler sets the function told about a failed destination write.
// It is called at most once per Logger.
func WithErrorHandler(fn func(error)) Option {
	return func(lg *Logger) { lg.onError = fn }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(lg *Logger) { lg.now = now }
}

// New creates a Logger writing to w. Without options it logs at LevelInfo,
// without timestamps or colour.
func New(w io.Writer, opts ...Option) *Logger {
	lg := &Logger{
		out: w,
		now: time.Now,
		onError: func(err error) {
			fmt.Fprintln(os.Stderr, err)
		},
	}
	lg.level.Store(int32(LevelInfo))
	for _, opt := range opts {
		opt(lg)
	}

	switch lg.color {
	case ColorAuto:
		lg.out = colorprofile.NewWriter(w, os.Environ())
		lg.styles = newStyles()
	case ColorAlways:
		lg.styles = newStyles()
	}
	return lg
}

// Level returns the current threshold.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// SetLevel changes the threshold. Meant for initialization; it is safe but
// unsynchronized with respect to in-flight messages.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// Enabled reports whether a message at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.Level() && level < LevelOff
}

// Log formats and writes one message. It returns the template error, if
// any, or the destination write error.
func (l *Logger) Log(level Level, template string, args ...any) error {
	return l.log(level, template, args)
}

// Trace logs at LevelTrace.
func (l *Logger) Trace(template string, args ...any) { _ = l.log(LevelTrace, template, args) }

// Debug logs at LevelDebug.
func (l *Logger) Debug(template string, args ...any) { _ = l.log(LevelDebug, template, args) }

// Info logs at LevelInfo.
func (l *Logger) Info(template string, args ...any) { _ = l.log(LevelInfo, template, args) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(template string, args ...any) { _ = l.log(LevelWarn, template, args) }

// Error logs at LevelError.
func (l *Logger) Error(template string, args ...any) { _ = l.log(LevelError, template, args) }

// Critical logs at LevelCritical.
func (l *Logger) Critical(template string, args ...any) { _ = l.log(LevelCritical, template, args) }

// Flush syncs the destination when it supports it.
func (l *Logger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.out.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

// log must be called directly by every exported entry point so the caller
// lookup lands on user code.
func (l *Logger) log(level Level, template string, args []any) error {
	if !l.Enabled(level) {
		if l.strict {
			if _, err := Format(template, args...); err != nil {
				panic(err)
			}
		}
		return nil
	}

	var file string
	var line int
	if l.source {
		_, file, line, _ = runtime.Caller(2)
	}

	l.mu.Lock()
	msg, ferr := Format(template, args...)
	if ferr != nil {
		if l.strict {
			l.mu.Unlock()
			panic(ferr)
		}
		level = LevelError
		msg = "format error: " + ferr.Error()
	}

	buf := l.appendPrefix(make([]byte, 0, 64+len(msg)), level, file, line)
	buf = append(buf, msg...)
	buf = append(buf, '\n')
	werr := l.write(buf)
	l.mu.Unlock()

	if werr != nil {
		// Called without l.mu so the handler may log through l.
		if l.onError != nil {
			l.onError(fmt.Errorf("log: write failed, further output discarded: %w", werr))
		}
		return werr
	}
	return ferr
}

func (l *Logger) appendPrefix(buf []byte, level Level, file string, line int) []byte {
	if l.timestamps {
		buf = append(buf, '[')
		buf = l.now().AppendFormat(buf, TimeLayout)
		buf = append(buf, "] "...)
	}
	if l.name != "" {
		buf = append(buf, '[')
		buf = append(buf, l.name...)
		buf = append(buf, "] "...)
	}
	buf = append(buf, '[')
	if l.styles != nil {
		buf = append(buf, l.styles.render(level)...)
	} else {
		buf = append(buf, level.String()...)
	}
	buf = append(buf, "] "...)
	if file != "" {
		buf = append(buf, '[')
		buf = append(buf, filepath.Base(file)...)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(line), 10)
		buf = append(buf, "] "...)
	}
	return buf
}

// write runs with l.mu held. Only the first failing write returns an error.
func (l *Logger) write(buf []byte) error {
	if l.failed {
		return nil
	}
	_, err := l.out.Write(buf)
	if err == nil {
		return nil
	}

	l.failed = true
	l.out = io.Discard
	return err
}

// Err returns ErrDiscarding once a write to the destination has failed.
func (l *Logger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.failed {
		return ErrDiscarding
	}
	return nil
}
