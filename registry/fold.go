package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
)

// Tag names recognized inside an enums scope.
const (
	tagEnums  = "enums"
	tagEnum   = "enum"
	tagUnused = "unused"
)

// wideType is the type attribute value marking a 64-bit enum.
const wideType = "ull"

// FoldEnums consumes the events of one <enums> scope from s, whose opening
// tag has already been read, and inserts every resolved <enum> into t.
//
// Values are resolved with [ResolveValue] using bitmask for the whole scope.
// When group is non-nil, the name of every newly inserted key is added to it.
// <unused> entries are ignored. FoldEnums returns nil after the closing
// </enums> tag.
//
// Errors: any other tag fails with [ErrUnexpectedTag]; end of input before
// </enums> fails with [ErrUnexpectedEndOfInput]; an attribute outside name,
// value, type, api, alias and comment fails with [ErrUnrecognizedAttribute];
// a key already present with a different value fails with a
// *[RedefinitionError]. An entry that fails never modifies t or group.
//
// A nil t folds into a new table that is then discarded, which checks the
// scope without keeping its entries.
func FoldEnums(
	ctx context.Context,
	s Stream,
	t *Table,
	bitmask bool,
	group Group,
	opts ...Option,
) error {
	if t == nil {
		t = NewTable()
	}

	f := folder{opts: makeOptions(opts...), table: t, group: group, bitmask: bitmask}

	return f.fold(ctx, s)
}

type folder struct {
	opts     options
	table    *Table
	group    Group
	bitmask  bool
	inserted int
	skipped  int
}

func (f *folder) fold(ctx context.Context, s Stream) error {
	f.opts.logger.TraceContext(ctx, "fold start",
		slog.Bool("bitmask", f.bitmask),
		slog.Bool("group", f.group != nil),
	)

	for {
		ev, err := s.Next()
		if errors.Is(err, io.EOF) {
			return ErrUnexpectedEndOfInput.With(slog.String("scope", tagEnums))
		}

		if err != nil {
			return ErrReadInput.Wrap(err)
		}

		switch {
		case ev.Kind == EventClose && ev.Name == tagEnums:
			f.opts.logger.TraceContext(ctx, "fold end",
				slog.Int("inserted", f.inserted),
				slog.Int("skipped", f.skipped),
			)

			return nil

		case ev.Kind != EventClose && ev.Name == tagEnum:
			if err := f.entry(ctx, ev); err != nil {
				return err
			}

		case ev.Kind != EventClose && ev.Name == tagUnused:
			// carries no value

		default:
			return unexpected(ev)
		}

		if ev.Kind == EventOpen {
			if err := closeEntry(s, ev); err != nil {
				return err
			}
		}
	}
}

// entry resolves one <enum> and inserts it.
func (f *folder) entry(ctx context.Context, ev Event) error {
	var (
		name, value, api string
		hasName, hasVal  bool
		wide             bool
	)

	// Later duplicates of an attribute overwrite earlier ones.
	for _, a := range ev.Attrs {
		switch a.Key {
		case "name":
			name, hasName = a.Value, true
		case "value":
			value, hasVal = a.Value, true
		case "type":
			wide = a.Value == wideType
		case "api":
			api = a.Value
		case "alias", "comment":
		default:
			if _, ok := slices.BinarySearch(f.opts.ignoredAttrs, a.Key); ok {
				continue
			}

			return ErrUnrecognizedAttribute.
				With(slog.String("attribute", a.Key), slog.String("tag", ev.String())).
				At(ev.Line, ev.Column)
		}
	}

	if !hasName || name == "" {
		return ErrMissingAttribute.
			With(slog.String("attribute", "name"), slog.String("tag", ev.String())).
			At(ev.Line, ev.Column)
	}

	if !hasVal {
		return ErrMissingAttribute.
			With(slog.String("attribute", "value"), slog.String("tag", ev.String())).
			At(ev.Line, ev.Column)
	}

	val, err := resolveValue(value, wide, f.bitmask, f.opts.negativeRadix)
	if err != nil {
		return WrapError(err).With(slog.String("name", name)).At(ev.Line, ev.Column)
	}

	key := Key{Name: name, API: api}

	inserted, err := f.table.Insert(key, val)
	if err != nil {
		var re *RedefinitionError
		if errors.As(err, &re) {
			re.Line, re.Column = ev.Line, ev.Column
		}

		return err
	}

	if !inserted {
		f.skipped++
		f.opts.logger.TraceContext(ctx, "enum redeclared",
			slog.Any("key", key), slog.String("value", val.String()))

		return nil
	}

	f.inserted++

	if f.group != nil {
		f.group.Add(name)
	}

	f.opts.logger.TraceContext(ctx, "enum inserted",
		slog.Any("key", key), slog.String("value", val.String()))

	return nil
}

// closeEntry consumes the close tag of an entry written as an open tag.
// Entries carry no content, so anything else is unexpected.
func closeEntry(s Stream, open Event) error {
	ev, err := s.Next()
	if errors.Is(err, io.EOF) {
		return ErrUnexpectedEndOfInput.With(slog.String("scope", open.Name))
	}

	if err != nil {
		return ErrReadInput.Wrap(err)
	}

	if ev.Kind != EventClose || ev.Name != open.Name {
		return unexpected(ev)
	}

	return nil
}

func unexpected(ev Event) *Error {
	return ErrUnexpectedTag.
		With(slog.String("tag", ev.String())).
		At(ev.Line, ev.Column)
}
