package registry

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression over registry entries.
//
// Expressions use expr-lang syntax and see the variables
//
//	name   string    // e.g. "GL_TRIANGLES"
//	api    string    // "" for API-independent entries
//	kind   string    // "enum", "bitmask" or "wide"
//	value  uint64    // the bit pattern
//	groups []string  // groups containing name
//
// For example: `kind == "bitmask" && "AttribMask" in groups`.
type Filter struct {
	source  string
	program *vm.Program
}

// filterEnv is the expression environment for one entry.
type filterEnv struct {
	Name   string   `expr:"name"`
	API    string   `expr:"api"`
	Kind   string   `expr:"kind"`
	Value  uint64   `expr:"value"`
	Groups []string `expr:"groups"`
}

// CompileFilter compiles src. An empty source yields a nil filter that
// matches everything.
func CompileFilter(src string) (*Filter, error) {
	if src == "" {
		return nil, nil
	}

	program, err := expr.Compile(src, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, ErrInvalidFilter.Wrap(err).With(slog.String("expr", src))
	}

	return &Filter{source: src, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}

	return f.source
}

// Match evaluates the filter for e, a member of the given groups.
// A nil filter matches every entry.
func (f *Filter) Match(e Entry, groups []string) (bool, error) {
	if f == nil {
		return true, nil
	}

	out, err := expr.Run(f.program, filterEnv{
		Name:   e.Key.Name,
		API:    e.Key.API,
		Kind:   e.Value.Kind.String(),
		Value:  e.Value.Bits,
		Groups: groups,
	})
	if err != nil {
		return false, ErrInvalidFilter.Wrap(err).With(
			slog.String("expr", f.source),
			slog.String("name", e.Key.Name),
		)
	}

	ok, _ := out.(bool)

	return ok, nil
}
