package log

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
}

func TestLoggerThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WithLevel(LevelWarn))

	l.Trace("This is a trace log")
	l.Debug("This is a debug log")
	l.Info("This is a info log")
	assert.Empty(t, buf.String(), "messages below threshold must not be written")

	l.Warn("This is a warn log")
	l.Error("This is a error log")
	l.Critical("This is a critical log")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"[warning] This is a warn log",
		"[error] This is a error log",
		"[critical] This is a critical log",
	}, lines)
}

func TestLoggerOffLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WithLevel(LevelOff))
	l.Critical("nothing")
	assert.Empty(t, buf.String())
	assert.False(t, l.Enabled(LevelCritical))
	assert.False(t, l.Enabled(LevelOff))
}

func TestLoggerSubstitutesInOrder(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WithLevel(LevelTrace))

	require.NoError(t, l.Log(LevelInfo, "Vec3 w = cross(u, v): ({}, {}, {})", float32(0), float32(0), float32(1)))
	assert.Equal(t, "[info] Vec3 w = cross(u, v): (0, 0, 1)\n", buf.String())
}

func TestLoggerPrefixFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf,
		WithTimestamp(true),
		WithClock(fixedClock),
		WithName("sandbox"),
		WithSource(true),
	)

	l.Info("hello {}", "world")

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "[2026-01-02 03:04:05.006] [sandbox] [info] [logger_test.go:"), line)
	assert.True(t, strings.HasSuffix(line, "] hello world\n"), line)
}

func TestPackageLevelSourceLocation(t *testing.T) {
	var buf bytes.Buffer
	prev := SetDefault(New(&buf, WithSource(true)))
	defer SetDefault(prev)

	Info("from package level")
	assert.Contains(t, buf.String(), "[logger_test.go:")
}

func TestLoggerFormatErrorInline(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	err := l.Log(LevelInfo, "({}, {})", 1)
	require.ErrorIs(t, err, ErrArgCount)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[error] format error: "), out)
	assert.Contains(t, out, `"({}, {})"`)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestLoggerStrictPanics(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WithStrict(true))

	assert.PanicsWithError(t, (&FormatError{
		Template: "{}",
		Args:     0,
		Err:      ErrArgCount,
		Detail:   "placeholder refers to argument 0",
	}).Error(), func() {
		l.Info("{}")
	})
	assert.Empty(t, buf.String())

	// The lock must have been released by the panic.
	l.Info("still {}", "alive")
	assert.Equal(t, "[info] still alive\n", buf.String())
}

func TestLoggerFilteredFormatErrorIsSilent(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WithLevel(LevelError))
	assert.NotPanics(t, func() { l.Debug("{} {}", 1) })
	assert.Empty(t, buf.String())
}

func TestLoggerStrictChecksFilteredTemplates(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WithLevel(LevelError), WithStrict(true))

	assert.Panics(t, func() { l.Debug("{} {}", 1) })
	assert.Panics(t, func() { l.Trace("{:d}", "abc") })
	assert.NotPanics(t, func() { l.Debug("fine {}", 1) })
	assert.Empty(t, buf.String())
}

type failingWriter struct {
	calls int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("disk full")
}

func TestLoggerDegradesAfterWriteFailure(t *testing.T) {
	w := &failingWriter{}
	var reported []error
	l := New(w, WithErrorHandler(func(err error) { reported = append(reported, err) }))

	err := l.Log(LevelInfo, "first")
	require.Error(t, err)
	assert.ErrorIs(t, l.Err(), ErrDiscarding)

	for i := range 10 {
		assert.NoError(t, l.Log(LevelInfo, "again {}", i))
	}

	assert.Equal(t, 1, w.calls, "destination must not be retried after failure")
	require.Len(t, reported, 1)
	assert.Contains(t, reported[0].Error(), "disk full")
}

func TestLoggerErrorHandlerMayLog(t *testing.T) {
	var (
		l        *Logger
		reported []error
	)
	l = New(&failingWriter{}, WithErrorHandler(func(err error) {
		reported = append(reported, err)
		l.Error("write failed: {}", err)
	}))

	done := make(chan error, 1)
	go func() { done <- l.Log(LevelInfo, "first") }()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("logging from the error handler deadlocked")
	}
	require.Len(t, reported, 1)
	assert.ErrorIs(t, l.Err(), ErrDiscarding)
}

func TestLoggerConcurrentLinesNotInterleaved(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WithLevel(LevelTrace))

	const workers, perWorker = 8, 200
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWorker {
				l.Info("worker {} message {} {}", w, i, strings.Repeat("x", 64))
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, workers*perWorker)
	suffix := " " + strings.Repeat("x", 64)
	for _, line := range lines {
		require.True(t, strings.HasPrefix(line, "[info] worker "), line)
		require.True(t, strings.HasSuffix(line, suffix), line)
	}
}

func TestLoggerColor(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WithColor(ColorAlways))
	l.Warn("styled")
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "warning")
	assert.Contains(t, buf.String(), "] styled\n")

	buf.Reset()
	New(&buf, WithColor(ColorNever)).Warn("plain")
	assert.Equal(t, "[warning] plain\n", buf.String())

	buf.Reset()
	New(&buf, WithColor(ColorAuto)).Info("auto")
	assert.Contains(t, buf.String(), "auto")
}

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]ColorMode{
		"never": ColorNever, "auto": ColorAuto, "always": ColorAlways, "": ColorAuto,
	} {
		got, err := ParseColorMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseColorMode("rainbow")
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	assert.Equal(t, LevelInfo, l.Level())
	l.Debug("hidden")
	l.SetLevel(LevelDebug)
	l.Debug("shown")
	assert.Equal(t, "[debug] shown\n", buf.String())
}

func TestDefaultLogger(t *testing.T) {
	require.NotNil(t, Default())
	assert.Equal(t, LevelInfo, Default().Level())

	var buf bytes.Buffer
	prev := SetDefault(New(&buf, WithLevel(LevelTrace)))
	defer SetDefault(prev)

	assert.Same(t, Default(), SetDefault(nil))

	Trace("t")
	Debug("d")
	Info("i {}", 1)
	Warn("w")
	Error("e")
	Critical("c {}", fmt.Sprint(2))
	assert.Equal(t, "[trace] t\n[debug] d\n[info] i 1\n[warning] w\n[error] e\n[critical] c 2\n", buf.String())
}

func BenchmarkLoggerInfo(b *testing.B) {
	var buf bytes.Buffer
	l := New(&buf)
	for b.Loop() {
		buf.Reset()
		l.Info("Vec3 ({}, {}, {})", float32(1), float32(2), float32(3))
	}
}

func BenchmarkLoggerFiltered(b *testing.B) {
	var buf bytes.Buffer
	l := New(&buf, WithLevel(LevelError))
	for b.Loop() {
		l.Debug("Vec3 ({}, {}, {})", float32(1), float32(2), float32(3))
	}
}
