package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Registry is the enum table of one or more registry documents together with
// the named groups declared by their <enums group="..."> scopes.
type Registry struct {
	Enums  *Table
	Groups map[string]Group
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{Enums: NewTable(), Groups: make(map[string]Group)}
}

// Load reads a complete registry document from s.
//
// Every <enums> scope is folded into one table with [FoldEnums]. A scope with
// type="bitmask" resolves its values as bitmasks, and a scope with a group
// attribute records its new names in the group of that name. All other
// elements are skipped.
func Load(ctx context.Context, s Stream, opts ...Option) (*Registry, error) {
	reg := NewRegistry()

	if err := reg.load(ctx, s, opts...); err != nil {
		return nil, err
	}

	return reg, nil
}

func (r *Registry) load(ctx context.Context, s Stream, opts ...Option) error {
	o := makeOptions(opts...)
	scopes := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ev, err := s.Next()
		if errors.Is(err, io.EOF) {
			o.logger.DebugContext(ctx, "registry loaded",
				slog.Int("scopes", scopes),
				slog.Int("enums", r.Enums.Len()),
				slog.Int("groups", len(r.Groups)),
			)

			return nil
		}

		if err != nil {
			return ErrReadInput.Wrap(err)
		}

		switch {
		case ev.Kind == EventOpen && ev.Name == tagEnums:
			scopes++

			if err := r.LoadScope(ctx, s, ev, opts...); err != nil {
				return err
			}

		case ev.Kind == EventOpen && ev.Name == "registry":
			// descend

		case ev.Kind == EventOpen:
			if err := Skip(s); err != nil {
				return WrapError(err).With(slog.String("element", ev.Name))
			}
		}
	}
}

// LoadScope folds the <enums> scope opened by open, which must be the event
// most recently read from s.
func (r *Registry) LoadScope(
	ctx context.Context,
	s Stream,
	open Event,
	opts ...Option,
) error {
	typ, _ := open.Attr("type")
	bitmask := typ == "bitmask"

	var group Group

	if name, ok := open.Attr("group"); ok && name != "" {
		group = r.Groups[name]
		if group == nil {
			group = make(Group)
			r.Groups[name] = group
		}
	}

	if err := FoldEnums(ctx, s, r.Enums, bitmask, group, opts...); err != nil {
		return err
	}

	return nil
}

// Merge folds other into r. Enum conflicts fail as in [Table.Merge]; groups
// are united.
func (r *Registry) Merge(other *Registry) error {
	if err := r.Enums.Merge(other.Enums); err != nil {
		return err
	}

	for name, g := range other.Groups {
		dst := r.Groups[name]
		if dst == nil {
			dst = make(Group, len(g))
			r.Groups[name] = dst
		}

		maps.Copy(dst, g)
	}

	return nil
}

// Clone returns a deep copy of r.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		Enums:  r.Enums.Clone(),
		Groups: make(map[string]Group, len(r.Groups)),
	}

	for name, g := range r.Groups {
		c.Groups[name] = maps.Clone(g)
	}

	return c
}

// GroupsOf returns the sorted names of the groups containing name.
func (r *Registry) GroupsOf(name string) []string {
	var out []string

	for g, members := range r.Groups {
		if members.Has(name) {
			out = append(out, g)
		}
	}

	slices.Sort(out)

	return out
}

// membership inverts the group map.
func (r *Registry) membership() map[string][]string {
	idx := make(map[string][]string)

	for _, g := range slices.Sorted(maps.Keys(r.Groups)) {
		for name := range r.Groups[g] {
			idx[name] = append(idx[name], g)
		}
	}

	return idx
}

// LoadAll parses every source concurrently into its own registry, then
// merges them in argument order.
func LoadAll(ctx context.Context, sources []io.Reader, opts ...Option) (*Registry, error) {
	parts := make([]*Registry, len(sources))

	eg, ctx := errgroup.WithContext(ctx)

	for i, src := range sources {
		eg.Go(func() error {
			reg, err := ParseReader(ctx, src, opts...)
			if err != nil {
				return WrapError(err).With(slog.Int("source", i))
			}

			parts[i] = reg

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	reg := NewRegistry()

	for i, part := range parts {
		if err := reg.Merge(part); err != nil {
			var re *RedefinitionError
			if errors.As(err, &re) {
				return nil, err
			}

			return nil, WrapError(err).With(slog.Int("source", i))
		}
	}

	return reg, nil
}
