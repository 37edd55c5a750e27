// Package fieldindex interns declared field names into small, dense
// integer indices so instance state can key its memoization maps by
// index instead of re-hashing strings on every access.
package fieldindex

import "github.com/importsteel/steel/internal/hash"

// Table maps field names, in declaration order, to a dense integer
// index. It is built once per structure declaration and is immutable
// thereafter.
//
// Lookups are hash-bucketed by xxHash64 for speed, but the owning name
// is always confirmed on read so a hash collision degrades to a slower
// comparison instead of returning the wrong field.
type Table struct {
	names   []string
	indexOf map[uint64][]int
}

// NewTable builds a Table from an ordered list of field names. Field
// names must be unique; NewTable returns false if a duplicate is found.
func NewTable(names []string) (*Table, bool) {
	t := &Table{
		names:   make([]string, 0, len(names)),
		indexOf: make(map[uint64][]int, len(names)),
	}
	for _, name := range names {
		if _, ok := t.Index(name); ok {
			return nil, false
		}
		h := hashName(name)
		idx := len(t.names)
		t.indexOf[h] = append(t.indexOf[h], idx)
		t.names = append(t.names, name)
	}

	return t, true
}

// Index returns the dense index for name, and whether it was found.
func (t *Table) Index(name string) (int, bool) {
	for _, idx := range t.indexOf[hashName(name)] {
		if t.names[idx] == name {
			return idx, true
		}
	}

	return 0, false
}

// Name returns the field name at idx.
func (t *Table) Name(idx int) string {
	return t.names[idx]
}

// Len returns the number of interned field names.
func (t *Table) Len() int {
	return len(t.names)
}

func hashName(name string) uint64 {
	return hash.ID(name)
}
