package registry

//go:generate go tool stringer --linecomment --type Kind,EventKind --output kind_string.go

import (
	"fmt"
	"log/slog"
	"strings"
)

// Key identifies one constant in a [Table].
//
// Most enums have an empty API, meaning the same definition applies to every
// API variant. A few names are given different values depending on the API
// (e.g. "gl" versus "gles2"); each such variant is a distinct key.
type Key struct {
	// Name is the constant's bare identifier, e.g. "GL_TRIANGLES".
	Name string
	// API restricts the definition to one API variant. Empty means all.
	API string
}

// String returns the name, followed by "@api" for API-specific keys.
func (k Key) String() string {
	if k.API == "" {
		return k.Name
	}

	return k.Name + "@" + k.API
}

// LogValue implements slog.LogValuer.
func (k Key) LogValue() slog.Value {
	if k.API == "" {
		return slog.StringValue(k.Name)
	}

	return slog.GroupValue(slog.String("name", k.Name), slog.String("api", k.API))
}

// Kind discriminates the numeric representation of a [Value]: an ordinary
// 32-bit enumerant (GLenum), a 32-bit flag (GLbitfield), or a 64-bit value
// tagged type="ull" in the registry.
type Kind uint8

const (
	KindEnum    Kind = iota // enum
	KindBitmask             // bitmask
	KindWide                // wide
)

// ParseKind is the inverse of [Kind.String].
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enum":
		return KindEnum, true
	case "bitmask":
		return KindBitmask, true
	case "wide":
		return KindWide, true
	default:
		return 0, false
	}
}

// Value is a resolved constant. It is comparable: two values are equal only
// if both kind and bit pattern match.
type Value struct {
	Kind Kind
	Bits uint64
}

// Enum returns an ordinary enumerant value.
func Enum(v uint32) Value { return Value{Kind: KindEnum, Bits: uint64(v)} }

// Bitmask returns a flag value.
func Bitmask(v uint32) Value { return Value{Kind: KindBitmask, Bits: uint64(v)} }

// Wide returns a 64-bit value.
func Wide(v uint64) Value { return Value{Kind: KindWide, Bits: v} }

// String returns e.g. "enum(0x4)" or "bitmask(0x00000100)".
func (v Value) String() string {
	return v.Kind.String() + "(" + v.Literal() + ")"
}

// Literal returns the hexadecimal literal used when rendering the value.
// Bitmasks are zero-padded to eight digits.
func (v Value) Literal() string {
	if v.Kind == KindBitmask {
		return fmt.Sprintf("0x%08X", v.Bits)
	}

	return fmt.Sprintf("0x%X", v.Bits)
}

// Entry pairs a key with its resolved value.
type Entry struct {
	Key   Key
	Value Value
}

func compareKeys(a, b Key) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}

	return strings.Compare(a.API, b.API)
}
