package registry

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Render returns the Go constant specification for one entry, e.g.
//
//	TRIANGLES GLenum = 0x4
//	DEPTH_BUFFER_BIT GLbitfield = 0x00000100
//	TIMEOUT_IGNORED uint64 = 0xFFFFFFFFFFFFFFFF
//
// When strip is set, the first len(prefix) bytes of the name are removed
// (prefix is [DefaultPrefix] unless changed with [WithPrefix]); a name
// shorter than the prefix fails with [ErrNameTooShortForPrefix].
// Enumerants and 64-bit values are written in minimal upper-case hex;
// bitmasks are zero-padded to eight digits.
func Render(k Key, v Value, strip bool, opts ...Option) (string, error) {
	return render(k, v, strip, makeOptions(opts...))
}

func render(k Key, v Value, strip bool, o options) (string, error) {
	name := k.Name

	if strip {
		if len(name) < len(o.prefix) {
			return "", ErrNameTooShortForPrefix.With(
				slog.String("name", name),
				slog.String("prefix", o.prefix),
			)
		}

		name = name[len(o.prefix):]
	}

	var typ string

	switch v.Kind {
	case KindEnum:
		typ = o.enumType
	case KindBitmask:
		typ = o.bitmaskType
	case KindWide:
		typ = o.wideType
	default:
		return "", ErrInvalidKind.With(
			slog.String("name", k.Name),
			slog.String("kind", v.Kind.String()),
		)
	}

	return name + " " + typ + " = " + v.Literal(), nil
}

// Declaration formats one entry with the fmt package. The %v verb writes the
// name verbatim and %+v strips the [DefaultPrefix], mirroring [Render].
type Declaration struct {
	Key   Key
	Value Value
}

// Format implements fmt.Formatter.
func (d Declaration) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v', 's':
		s, err := Render(d.Key, d.Value, f.Flag('+'))
		if err != nil {
			fmt.Fprintf(f, "%%!%c(%s)", verb, err)

			return
		}

		_, _ = f.Write([]byte(s))

	case 'q':
		s, err := Render(d.Key, d.Value, f.Flag('+'))
		if err != nil {
			fmt.Fprintf(f, "%%!%c(%s)", verb, err)

			return
		}

		_, _ = f.Write([]byte(strconv.Quote(s)))

	default:
		fmt.Fprintf(f, "%%!%c(registry.Declaration=%s)", verb, d.Key)
	}
}
