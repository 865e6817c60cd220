package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Sentinel errors. Every error returned by this package, other than those of
// the caller's io.Reader or io.Writer, matches exactly one of these with
// [errors.Is].
var (
	ErrMalformedNumber         = NewError("malformed number")
	ErrUnrecognizedAttribute   = NewError("unrecognized attribute")
	ErrMissingAttribute        = NewError("missing attribute")
	ErrConflictingRedefinition = NewError("conflicting redefinition")
	ErrUnexpectedTag           = NewError("unexpected tag")
	ErrUnexpectedEndOfInput    = NewError("unexpected end of input")
	ErrNameTooShortForPrefix   = NewError("name too short for prefix")
	ErrReadInput               = NewError("failed to read input")
	ErrInvalidFilter           = NewError("invalid filter expression")
	ErrInvalidKind             = NewError("invalid value kind")
	ErrTypeNameConflict        = NewError("type name used for 32-bit and 64-bit values")
	ErrGenerateSource          = NewError("generated source does not parse")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind  *Error // sentinel this error derives from
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e

	return e
}

// WrapError converts err into an *Error, returning it unchanged if it already
// is one.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	//   "<msg>: <err>", "<msg>", or "<err>"
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether e derives from the same sentinel as target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e.kind == nil {
		return false
	}

	return e.kind == t || e.kind == t.kind
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{kind: e.kind, msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{kind: e.kind, msg: e.msg, err: e.err, attrs: newAttrs}
}

// At returns a copy of e annotated with an input position.
func (e *Error) At(line, column int) *Error {
	if line <= 0 {
		return e
	}

	return e.With(slog.Int("line", line), slog.Int("column", column))
}

// Attr returns the string value of the first attribute named key.
func (e *Error) Attr(key string) (string, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value.String(), true
		}
	}

	return "", false
}

// RedefinitionError reports a key that resolved to two different values.
// It matches [ErrConflictingRedefinition].
type RedefinitionError struct {
	Key    Key
	Old    Value
	New    Value
	Line   int
	Column int
}

func (e *RedefinitionError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s: have %s, got %s",
		ErrConflictingRedefinition.msg, e.Key, e.Old, e.New)

	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d, column %d)", e.Line, e.Column)
	}

	return b.String()
}

// Is reports whether target is [ErrConflictingRedefinition].
func (e *RedefinitionError) Is(target error) bool {
	return target == ErrConflictingRedefinition
}

// LogValue implements slog.LogValuer.
func (e *RedefinitionError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrConflictingRedefinition.msg),
		slog.Any("key", e.Key),
		slog.String("old", e.Old.String()),
		slog.String("new", e.New.String()),
	}

	if e.Line > 0 {
		attrs = append(attrs, slog.Int("line", e.Line), slog.Int("column", e.Column))
	}

	return slog.GroupValue(attrs...)
}
