// Package transform implements the traceprep table operations: filtering
// write operations out of a raw trace, collapsing duplicate keys by median,
// reproducible subsampling, and k-fold cross-validation splitting. Every
// operation consumes a table and returns a new one; input tables are never
// modified.
package transform

import (
	"fmt"
	"strconv"
	"strings"

	"traceprep/internal/table"
)

// Well-known trace columns.
const (
	ColOpUnit  = "op_unit"
	ColQueryID = "query_id"
)

// WriteOpCode is the op_unit value that marks a write operation.
const WriteOpCode = 2

// NoQuerySentinel is the query_id value meaning "no associated query".
const NoQuerySentinel = -1

// FilterOptions controls FilterWrites.
type FilterOptions struct {
	// WriteOp is the op_unit code to keep. Zero means WriteOpCode.
	WriteOp int
	// StripQueryID drops the query_id column from the output. Rows carrying
	// the -1 sentinel are removed whenever the column is present, regardless
	// of this flag.
	StripQueryID bool
}

// FilterWrites keeps only the rows whose op_unit marks a write and drops the
// op_unit column from the result. Rows whose query_id is the -1 sentinel are
// removed as well. Returns ErrMissingColumn when the input has no op_unit
// column.
func FilterWrites(t *table.Table, opts FilterOptions) (*table.Table, error) {
	opCol, ok := t.ColumnIndex(ColOpUnit)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, ColOpUnit)
	}
	writeOp := opts.WriteOp
	if writeOp == 0 {
		writeOp = WriteOpCode
	}

	queryCol, hasQuery := t.ColumnIndex(ColQueryID)

	keep := make([]int, 0, len(t.Header)-1)
	for i := range t.Header {
		if i == opCol {
			continue
		}
		if opts.StripQueryID && hasQuery && i == queryCol {
			continue
		}
		keep = append(keep, i)
	}

	out := table.New(headerFor(t, keep))
	for _, row := range t.Rows {
		code, err := strconv.Atoi(strings.TrimSpace(row[opCol]))
		if err != nil || code != writeOp {
			continue
		}
		if hasQuery {
			if qid, err := strconv.Atoi(strings.TrimSpace(row[queryCol])); err == nil && qid == NoQuerySentinel {
				continue
			}
		}
		projected := make([]string, len(keep))
		for j, c := range keep {
			projected[j] = row[c]
		}
		out.Append(projected)
	}
	return out, nil
}

func headerFor(t *table.Table, cols []int) []string {
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = t.Header[c]
	}
	return header
}
