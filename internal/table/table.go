// Package table holds the in-memory tabular model shared by all traceprep
// transformations: an ordered header plus string-valued rows, with lookup of
// columns by name. Transformations never mutate a table in place; each one
// builds and returns a new table.
package table

import "strings"

// Table is an ordered sequence of rows sharing one header. Column order is
// significant and preserved through every transformation.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// New creates an empty table with the given header. Column names are trimmed
// of surrounding whitespace so inconsistently formatted input headers compare
// uniformly.
func New(header []string) *Table {
	trimmed := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, name := range header {
		trimmed[i] = strings.TrimSpace(name)
		index[trimmed[i]] = i
	}
	return &Table{Header: trimmed, Rows: nil, index: index}
}

// ColumnIndex returns the position of the named column, or false when the
// column does not exist.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// NumRows returns the number of data rows (excluding the header).
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Append adds a row to the table. The caller is responsible for matching the
// header width.
func (t *Table) Append(row []string) {
	t.Rows = append(t.Rows, row)
}

// Project returns a new table containing only the columns at the given
// positions, in the given order, with all rows carried over.
func (t *Table) Project(cols []int) *Table {
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = t.Header[c]
	}
	out := New(header)
	for _, row := range t.Rows {
		projected := make([]string, len(cols))
		for i, c := range cols {
			projected[i] = row[c]
		}
		out.Append(projected)
	}
	return out
}

// Empty returns a new table with this table's header and no rows.
func (t *Table) Empty() *Table {
	return New(t.Header)
}
