package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javelinengine/javelin/pkg/math3d"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		want     string
	}{
		{"no placeholders", "This is a info log", nil, "This is a info log"},
		{"sequential", "Vec2 a: ({}, {})", []any{float32(1), float32(2)}, "Vec2 a: (1, 2)"},
		{"float32 shortest", "{}", []any{float32(0.1)}, "0.1"},
		{"float64", "{}", []any{2.5}, "2.5"},
		{"explicit index", "{1} before {0}", []any{"a", "b"}, "b before a"},
		{"repeated index", "{0}{0}", []any{"x"}, "xx"},
		{"escapes", "{{}} {}", []any{7}, "{} 7"},
		{"printf spec", "{:.2f}", []any{float32(3.14159)}, "3.14"},
		{"spec without verb", "[{:5}]", []any{42}, "[   42]"},
		{"indexed spec", "{0:x}", []any{255}, "ff"},
		{"stringer", "v={}", []any{math3d.V3(1, 0, 0)}, "v=(1, 0, 0)"},
		{"error", "{}", []any{errors.New("boom")}, "boom"},
		{"nil", "{}", []any{nil}, "<nil>"},
		{"bool and ints", "{} {} {}", []any{true, int64(-3), uint64(9)}, "true -3 9"},
		{"struct fallback", "{}", []any{struct{ A int }{1}}, "{1}"},
		{"int verb", "{:d}|{:03d}", []any{7, uint8(5)}, "7|005"},
		{"string verbs", "{:s} {:q}", []any{"a", "b"}, `a "b"`},
		{"stringer as string", "{:s}", []any{math3d.V2(1, 2)}, "(1, 2)"},
		{"level as int", "{:d}", []any{LevelWarn}, "3"},
		{"percent in string arg", "{:s}", []any{"100%!"}, "100%!"},
		{"bool verb", "{:t}", []any{false}, "false"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Format(tc.template, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		want     error
	}{
		{"too few args", "({}, {})", []any{1}, ErrArgCount},
		{"too many args", "({})", []any{1, 2}, ErrArgCount},
		{"args without placeholders", "plain", []any{1}, ErrArgCount},
		{"index out of range", "{3}", []any{1}, ErrArgCount},
		{"unused indexed arg", "{1}", []any{1, 2}, ErrArgCount},
		{"unclosed brace", "({}", nil, ErrTemplate},
		{"stray close", "a } b", nil, ErrTemplate},
		{"mixed indexing", "{} {0}", []any{1}, ErrTemplate},
		{"mixed indexing reversed", "{0} {}", []any{1, 2}, ErrTemplate},
		{"bad index", "{x}", []any{1}, ErrTemplate},
		{"func arg", "{}", []any{func() {}}, ErrArgType},
		{"chan arg", "{}", []any{make(chan int)}, ErrArgType},
		{"int verb on string", "{:d}", []any{"abc"}, ErrArgType},
		{"int verb on float", "{:d}", []any{float32(1.5)}, ErrArgType},
		{"float verb on int", "{:.2f}", []any{3}, ErrArgType},
		{"string verb on int", "{:s}", []any{42}, ErrArgType},
		{"bool verb on string", "{:t}", []any{"yes"}, ErrArgType},
		{"verb on nil", "{:d}", []any{nil}, ErrArgType},
		{"unknown verb", "{:z}", []any{1}, ErrArgType},
		{"percent in spec", "{:%}", []any{1}, ErrTemplate},
		{"star width", "{:*d}", []any{1}, ErrTemplate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Format(tc.template, tc.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.template, fe.Template)
			assert.Equal(t, len(tc.args), fe.Args)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"err", LevelError},
		{"critical", LevelCritical},
		{"off", LevelOff},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLevelOrderingAndText(t *testing.T) {
	assert.True(t, LevelTrace < LevelDebug)
	assert.True(t, LevelDebug < LevelInfo)
	assert.True(t, LevelInfo < LevelWarn)
	assert.True(t, LevelWarn < LevelError)
	assert.True(t, LevelError < LevelCritical)

	b, err := LevelWarn.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "warning", string(b))

	var l Level
	require.NoError(t, l.UnmarshalText([]byte("critical")))
	assert.Equal(t, LevelCritical, l)
	assert.Error(t, l.UnmarshalText([]byte("loud")))
	assert.Equal(t, "level(42)", Level(42).String())
}
