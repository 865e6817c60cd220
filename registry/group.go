package registry

import (
	"maps"
	"slices"
)

// Group is a set of constant names collected while folding a scope.
// A nil Group is a valid "no group" argument to [FoldEnums].
type Group map[string]struct{}

// Add inserts name into g.
func (g Group) Add(name string) { g[name] = struct{}{} }

// Has reports whether name is in g.
func (g Group) Has(name string) bool {
	_, ok := g[name]

	return ok
}

// Sorted returns the names in g in lexical order.
func (g Group) Sorted() []string { return slices.Sorted(maps.Keys(g)) }
