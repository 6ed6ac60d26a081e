package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"traceprep/internal/table"
)

// groupKeyWidth is the number of leading columns forming the grouping key:
// the identifying columns left in front once op_unit is dropped.
const groupKeyWidth = 2

type groupKey struct {
	a, b string
}

// CollapseMedians groups rows by their first two columns and replaces each
// group with a single row holding the element-wise median of the remaining
// columns. Output rows appear in first-seen key order, so the result is
// deterministic regardless of how the groups were accumulated. A group of
// size one passes its original cell text through unchanged.
func CollapseMedians(t *table.Table) (*table.Table, error) {
	if len(t.Header) < groupKeyWidth {
		return nil, fmt.Errorf("%w: median collapse needs %d leading key columns, input has %d",
			ErrMissingColumn, groupKeyWidth, len(t.Header))
	}

	// Explicit key order next to the map keeps the output stable.
	var order []groupKey
	groups := make(map[groupKey][][]string)
	for _, row := range t.Rows {
		key := groupKey{row[0], row[1]}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	out := table.New(t.Header)
	for _, key := range order {
		rows := groups[key]
		if len(rows) == 1 {
			out.Append(rows[0])
			continue
		}
		collapsed := make([]string, len(t.Header))
		collapsed[0], collapsed[1] = key.a, key.b
		for col := groupKeyWidth; col < len(t.Header); col++ {
			values := make([]float64, len(rows))
			for i, row := range rows {
				v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
				if err != nil {
					return nil, fmt.Errorf("%w in column %q: %q", ErrNotNumeric, t.Header[col], row[col])
				}
				values[i] = v
			}
			collapsed[col] = strconv.FormatFloat(median(values), 'f', -1, 64)
		}
		out.Append(collapsed)
	}
	return out, nil
}

// median returns the standard median: the middle value for odd counts, the
// mean of the two middle values for even counts.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
