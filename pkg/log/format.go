package log

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	// ErrArgCount means the template and the argument list disagree on how
	// many values there are.
	ErrArgCount = errors.New("argument count mismatch")
	// ErrArgType means an argument has no printable form, or does not suit
	// the verb of its placeholder.
	ErrArgType = errors.New("unformattable argument")
	// ErrTemplate means the template itself is malformed.
	ErrTemplate = errors.New("malformed template")
)

// FormatError describes a template that could not be rendered.
type FormatError struct {
	Template string
	Args     int
	Err      error
	Detail   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("log: format %q with %d args: %v: %s", e.Template, e.Args, e.Err, e.Detail)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Format renders template with args.
//
// Placeholders:
//
//	{}        next argument
//	{N}       argument N (zero-based)
//	{:spec}   next argument with a printf spec, e.g. {:.2f} or {:08b}
//	{{ }}     literal braces
//
// Automatic and explicit indexing cannot be mixed. Every argument must be
// consumed; a missing or surplus argument is an error wrapping ErrArgCount.
func Format(template string, args ...any) (string, error) {
	fail := func(err error, detail string, a ...any) (string, error) {
		return "", &FormatError{Template: template, Args: len(args), Err: err, Detail: fmt.Sprintf(detail, a...)}
	}

	for i, a := range args {
		if !formattable(a) {
			return fail(ErrArgType, "argument %d has kind %s", i, reflect.TypeOf(a).Kind())
		}
	}

	var (
		b      strings.Builder
		next   int
		auto   bool
		manual bool
		used   = make([]bool, len(args))
	)
	b.Grow(len(template) + 8*len(args))

	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return fail(ErrTemplate, "unmatched '}' at offset %d", i)
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return fail(ErrTemplate, "unclosed '{' at offset %d", i)
			}
			field := template[i+1 : i+1+end]
			i += end + 1

			ref, spec, _ := strings.Cut(field, ":")
			idx := next
			if ref == "" {
				if manual {
					return fail(ErrTemplate, "cannot switch from manual to automatic indexing")
				}
				auto = true
				next++
			} else {
				if auto {
					return fail(ErrTemplate, "cannot switch from automatic to manual indexing")
				}
				n, err := strconv.Atoi(ref)
				if err != nil || n < 0 {
					return fail(ErrTemplate, "invalid argument index %q", ref)
				}
				manual = true
				idx = n
			}
			if idx >= len(args) {
				return fail(ErrArgCount, "placeholder refers to argument %d", idx)
			}
			if strings.ContainsAny(spec, "%*") {
				return fail(ErrTemplate, "invalid spec %q", spec)
			}
			used[idx] = true
			out, ok := formatArg(args[idx], spec)
			if !ok {
				return fail(ErrArgType, "argument %d of type %T does not fit {:%s}", idx, args[idx], spec)
			}
			b.WriteString(out)
		default:
			b.WriteByte(c)
		}
	}

	for i, u := range used {
		if !u {
			return fail(ErrArgCount, "argument %d is never used", i)
		}
	}
	return b.String(), nil
}

func formattable(a any) bool {
	if a == nil {
		return true
	}
	switch reflect.TypeOf(a).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return false
	}
	return true
}

// formatArg renders one argument. ok is false when spec names a verb that
// does not apply to a.
func formatArg(a any, spec string) (out string, ok bool) {
	if spec != "" {
		verb := spec[len(spec)-1]
		if (verb < 'a' || verb > 'z') && (verb < 'A' || verb > 'Z') {
			spec += "v"
			verb = 'v'
		}
		if !verbFits(verb, a) {
			return "", false
		}
		out = fmt.Sprintf("%"+spec, a)
		if strings.Contains(out, "%!") && !strings.Contains(fmt.Sprint(a), "%!") {
			return "", false
		}
		return out, true
	}

	switch v := a.(type) {
	case nil:
		return "<nil>", true
	case string:
		return v, true
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case error:
		return v.Error(), true
	case fmt.Stringer:
		return v.String(), true
	}
	return fmt.Sprint(a), true
}

// verbFits reports whether fmt can apply verb to a without producing an
// error marker.
func verbFits(verb byte, a any) bool {
	switch verb {
	case 'v', 'T':
		return true
	}
	if a == nil {
		return false
	}
	switch a.(type) {
	case error, fmt.Stringer:
		switch verb {
		case 's', 'q', 'x', 'X':
			return true
		}
	}

	t := reflect.TypeOf(a)
	k := t.Kind()
	isInt := k >= reflect.Int && k <= reflect.Uintptr
	isFloat := k >= reflect.Float32 && k <= reflect.Complex128
	isString := k == reflect.String || (k == reflect.Slice && t.Elem().Kind() == reflect.Uint8)

	switch verb {
	case 'd', 'o', 'O', 'c', 'U':
		return isInt
	case 'b':
		return isInt || isFloat
	case 'x', 'X':
		return isInt || isFloat || isString
	case 'e', 'E', 'f', 'F', 'g', 'G':
		return isFloat
	case 's':
		return isString
	case 'q':
		return isString || isInt
	case 't':
		return k == reflect.Bool
	case 'p':
		switch k {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
			return true
		}
	}
	return false
}
