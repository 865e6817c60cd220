package registry

import (
	"iter"
	"log/slog"
	"maps"
	"slices"
)

// Table maps keys to resolved values.
//
// Entries are immutable once inserted: inserting an existing key is a no-op
// when the value is identical and fails otherwise. The zero Table is empty and
// ready to use. A Table is not safe for concurrent mutation.
type Table struct {
	entries map[Key]Value
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[Key]Value)}
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Lookup returns the value stored for k.
func (t *Table) Lookup(k Key) (Value, bool) {
	v, ok := t.entries[k]

	return v, ok
}

// Insert adds k with value v.
//
// It reports whether k was newly added. If k is already present with the
// same value, Insert returns false and a nil error. If k is present with a
// different value, the table is left untouched and a *[RedefinitionError] is
// returned.
func (t *Table) Insert(k Key, v Value) (bool, error) {
	if old, ok := t.entries[k]; ok {
		if old != v {
			return false, &RedefinitionError{Key: k, Old: old, New: v}
		}

		return false, nil
	}

	if t.entries == nil {
		t.entries = make(map[Key]Value)
	}

	t.entries[k] = v

	return true, nil
}

// All returns an iterator over all entries in unspecified order.
func (t *Table) All() iter.Seq2[Key, Value] {
	return func(yield func(Key, Value) bool) {
		for k, v := range t.entries {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Keys returns all keys ordered by name, then API.
func (t *Table) Keys() []Key {
	return slices.SortedFunc(maps.Keys(t.entries), compareKeys)
}

// Sorted returns an iterator over all entries ordered by name, then API.
func (t *Table) Sorted() iter.Seq2[Key, Value] {
	return func(yield func(Key, Value) bool) {
		for _, k := range t.Keys() {
			if !yield(k, t.entries[k]) {
				return
			}
		}
	}
}

// Variants returns every entry with the given name, ordered by API.
// The API-independent variant, if any, comes first.
func (t *Table) Variants(name string) []Entry {
	var out []Entry

	for k, v := range t.entries {
		if k.Name == name {
			out = append(out, Entry{Key: k, Value: v})
		}
	}

	slices.SortFunc(out, func(a, b Entry) int { return compareKeys(a.Key, b.Key) })

	return out
}

// Names returns the distinct constant names in the table, sorted.
func (t *Table) Names() []string {
	seen := make(map[string]struct{}, len(t.entries))
	for k := range t.entries {
		seen[k.Name] = struct{}{}
	}

	return slices.Sorted(maps.Keys(seen))
}

// Merge inserts every entry of other into t using the same rule as
// [Table.Insert]. Entries are merged in sorted order and merging stops at the
// first conflict; entries merged before it remain in t.
func (t *Table) Merge(other *Table) error {
	for k, v := range other.Sorted() {
		if _, err := t.Insert(k, v); err != nil {
			return err
		}
	}

	return nil
}

// Clone returns an independent copy of t.
func (t *Table) Clone() *Table {
	if t.entries == nil {
		return NewTable()
	}

	return &Table{entries: maps.Clone(t.entries)}
}

// LogValue implements slog.LogValuer.
func (t *Table) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("entries", t.Len()))
}
