package transform

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"traceprep/internal/table"
)

// DefaultFolds is the number of cross-validation folds.
const DefaultFolds = 5

// SplitOptions controls Split.
type SplitOptions struct {
	// Folds is the number of folds. Zero means DefaultFolds.
	Folds int
	// Seed for shuffling query ids. Zero leaves the shuffle unseeded
	// (time-derived), matching the reference pipeline; set it for
	// reproducible splits.
	Seed int64
}

// Fold is one train/test pair of a cross-validation split.
type Fold struct {
	Training *table.Table
	Test     *table.Table
}

// Split partitions the table into k folds. When a query_id column exists the
// unique ids are shuffled and chunked, and every query's rows move between
// train and test as a unit. Without query_id the rows are chunked by
// position, in input order, with no shuffling. An empty table yields k empty
// folds.
func Split(t *table.Table, opts SplitOptions) ([]Fold, error) {
	k := opts.Folds
	if k == 0 {
		k = DefaultFolds
	}
	if k < 2 {
		return nil, fmt.Errorf("need at least 2 folds, got %d", k)
	}

	if queryCol, ok := t.ColumnIndex(ColQueryID); ok {
		return splitByQuery(t, queryCol, k, opts.Seed), nil
	}
	return splitByPosition(t, k), nil
}

// splitByQuery shuffles the unique query ids, cuts the shuffled list into k
// nearly-equal contiguous chunks, and assigns each query's rows to the fold
// of its chunk.
func splitByQuery(t *table.Table, queryCol, k int, seed int64) []Fold {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var ids []string
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		id := strings.TrimSpace(row[queryCol])
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	foldOf := make(map[string]int, len(ids))
	start := 0
	for i, size := range chunkSizes(len(ids), k) {
		for _, id := range ids[start : start+size] {
			foldOf[id] = i
		}
		start += size
	}

	folds := make([]Fold, k)
	for i := range folds {
		folds[i] = Fold{Training: t.Empty(), Test: t.Empty()}
	}
	for _, row := range t.Rows {
		i := foldOf[strings.TrimSpace(row[queryCol])]
		folds[i].Test.Append(row)
		for j := range folds {
			if j != i {
				folds[j].Training.Append(row)
			}
		}
	}
	return folds
}

// splitByPosition cuts the rows into k nearly-equal contiguous chunks in
// input order; fold i tests on chunk i and trains on the concatenation of
// the remaining chunks in increasing chunk order.
func splitByPosition(t *table.Table, k int) []Fold {
	sizes := chunkSizes(t.NumRows(), k)
	chunks := make([][][]string, k)
	start := 0
	for i, size := range sizes {
		chunks[i] = t.Rows[start : start+size]
		start += size
	}

	folds := make([]Fold, k)
	for i := range folds {
		training := t.Empty()
		test := t.Empty()
		for j, chunk := range chunks {
			if j == i {
				for _, row := range chunk {
					test.Append(row)
				}
				continue
			}
			for _, row := range chunk {
				training.Append(row)
			}
		}
		folds[i] = Fold{Training: training, Test: test}
	}
	return folds
}

// chunkSizes splits n items into k contiguous chunks whose sizes differ by at
// most one, larger chunks first.
func chunkSizes(n, k int) []int {
	sizes := make([]int, k)
	base, extra := n/k, n%k
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}

// WriteFolds writes each fold to dir as {prefix}training_{i}.csv and
// {prefix}test_{i}.csv. Each file carries the full header even when the fold
// is empty.
func WriteFolds(folds []Fold, dir, prefix string) error {
	for i, fold := range folds {
		trainingPath := filepath.Join(dir, fmt.Sprintf("%straining_%d.csv", prefix, i))
		if err := table.WriteFile(fold.Training, trainingPath); err != nil {
			return err
		}
		testPath := filepath.Join(dir, fmt.Sprintf("%stest_%d.csv", prefix, i))
		if err := table.WriteFile(fold.Test, testPath); err != nil {
			return err
		}
	}
	return nil
}
