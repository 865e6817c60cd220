package registry

import (
	"log/slog"
	"strconv"
	"strings"
)

// hexPrefixLen is the length of the "0x" prefix skipped by hexadecimal forms.
const hexPrefixLen = 2

// ResolveValue converts the raw value attribute of a registry entry into a
// [Value]. The first applicable rule wins:
//
//  1. wide: raw is "0x" followed by base-16 digits; the result is [Wide].
//  2. raw contains 'x' or 'X': "0x" followed by base-16 digits, 32 bits.
//  3. raw contains '-': a signed 32-bit integer in the negative radix (base
//     10 unless changed with [WithNegativeRadix]), stored as its two's
//     complement bit pattern.
//  4. otherwise: an unsigned 32-bit decimal.
//
// Rules 2 to 4 yield [Bitmask] when bitmask is set and [Enum] otherwise.
// Unparsable text fails with [ErrMalformedNumber].
func ResolveValue(raw string, wide, bitmask bool, opts ...Option) (Value, error) {
	o := makeOptions(opts...)

	return resolveValue(raw, wide, bitmask, o.negativeRadix)
}

func resolveValue(raw string, wide, bitmask bool, negativeRadix int) (Value, error) {
	kind := KindEnum
	if bitmask {
		kind = KindBitmask
	}

	switch {
	case wide:
		n, err := parseHex(raw, 64)
		if err != nil {
			return Value{}, malformed(raw, "hex64", err)
		}

		return Wide(n), nil

	case strings.ContainsAny(raw, "xX"):
		n, err := parseHex(raw, 32)
		if err != nil {
			return Value{}, malformed(raw, "hex32", err)
		}

		return Value{Kind: kind, Bits: n}, nil

	case strings.Contains(raw, "-"):
		n, err := strconv.ParseInt(raw, negativeRadix, 32)
		if err != nil {
			return Value{}, malformed(raw, "int32", err)
		}

		return Value{Kind: kind, Bits: uint64(uint32(int32(n)))}, nil

	default:
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return Value{}, malformed(raw, "uint32", err)
		}

		return Value{Kind: kind, Bits: n}, nil
	}
}

// parseHex parses the base-16 digits following a two-character prefix.
func parseHex(raw string, bitSize int) (uint64, error) {
	if len(raw) < hexPrefixLen {
		return 0, strconv.ErrSyntax
	}

	return strconv.ParseUint(raw[hexPrefixLen:], 16, bitSize)
}

func malformed(raw, format string, err error) *Error {
	return ErrMalformedNumber.Wrap(err).With(
		slog.String("value", raw),
		slog.String("format", format),
	)
}
