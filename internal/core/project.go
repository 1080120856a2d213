package core

import "fmt"

// SelectColumns returns a table holding only the named columns, in the order
// given. Rows are unchanged. An empty selection returns a copy of t.
// A name repeated in the selection is kept once, at its first position.
func SelectColumns(t *Table, names []string) (*Table, error) {
	if len(names) == 0 {
		return t.Clone(), nil
	}

	seen := make(map[string]bool, len(names))
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		col, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		seen[name] = true
		cols = append(cols, col.clone())
	}
	return NewTable(cols)
}
