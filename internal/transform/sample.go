package transform

import (
	"fmt"
	"math"
	"math/rand"

	"traceprep/internal/table"
)

// DefaultSampleSeed makes repeated sampling runs over the same input
// reproducible unless a different seed is configured.
const DefaultSampleSeed = 1

// SampleOptions controls Sample. Exactly one of Rate and Count must be set.
type SampleOptions struct {
	// Rate is a sampling percentage in the open interval (0, 100).
	Rate int
	// Count is an absolute number of rows to draw, 1..NumRows.
	Count int
	// Seed for the random source. Zero means DefaultSampleSeed.
	Seed int64
}

// Sample draws a uniformly random subset of rows without replacement. The
// draw is seeded, so identical input and options always produce identical
// output. Row order in the result follows the sampling order.
func Sample(t *table.Table, opts SampleOptions) (*table.Table, error) {
	if (opts.Rate == 0) == (opts.Count == 0) {
		return nil, fmt.Errorf("%w: got rate=%d count=%d", ErrSampleSpec, opts.Rate, opts.Count)
	}

	n := t.NumRows()
	var take int
	switch {
	case opts.Rate != 0:
		if opts.Rate <= 0 || opts.Rate >= 100 {
			return nil, fmt.Errorf("%w: %d", ErrSampleRate, opts.Rate)
		}
		take = int(math.Round(float64(n) * float64(opts.Rate) / 100))
	default:
		if opts.Count < 0 || opts.Count > n {
			return nil, fmt.Errorf("%w: %d of %d rows", ErrSampleCount, opts.Count, n)
		}
		take = opts.Count
	}

	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSampleSeed
	}
	rng := rand.New(rand.NewSource(seed))

	out := t.Empty()
	for _, i := range rng.Perm(n)[:take] {
		out.Append(t.Rows[i])
	}
	return out, nil
}
