package transform

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traceprep/internal/table"
)

func numberedTable(n int) *table.Table {
	t := table.New([]string{"name", "subkey", "latency"})
	for i := 0; i < n; i++ {
		t.Append([]string{"op" + strconv.Itoa(i), "k", strconv.Itoa(i * 10)})
	}
	return t
}

func TestSample_Rate(t *testing.T) {
	in := numberedTable(10)

	out, err := Sample(in, SampleOptions{Rate: 50})
	require.NoError(t, err)
	assert.Equal(t, 5, out.NumRows())
	assert.Equal(t, in.Header, out.Header)

	// Every sampled row comes from the input, no row twice
	seen := make(map[string]bool)
	for _, row := range out.Rows {
		assert.False(t, seen[row[0]], "row %s drawn twice", row[0])
		seen[row[0]] = true
	}
}

func TestSample_Reproducible(t *testing.T) {
	in := numberedTable(50)

	first, err := Sample(in, SampleOptions{Rate: 20, Seed: 7})
	require.NoError(t, err)
	second, err := Sample(in, SampleOptions{Rate: 20, Seed: 7})
	require.NoError(t, err)

	if diff := cmp.Diff(first.Rows, second.Rows); diff != "" {
		t.Errorf("same seed produced different samples (-first +second):\n%s", diff)
	}

	other, err := Sample(in, SampleOptions{Rate: 20, Seed: 8})
	require.NoError(t, err)
	assert.Equal(t, first.NumRows(), other.NumRows())
}

func TestSample_Count(t *testing.T) {
	in := numberedTable(10)

	out, err := Sample(in, SampleOptions{Count: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, out.NumRows())
}

func TestSample_CountTooLarge(t *testing.T) {
	in := numberedTable(10)

	_, err := Sample(in, SampleOptions{Count: 11})
	require.ErrorIs(t, err, ErrSampleCount)
}

func TestSample_RateOutOfRange(t *testing.T) {
	in := numberedTable(10)

	for _, rate := range []int{-5, 100, 150} {
		_, err := Sample(in, SampleOptions{Rate: rate})
		assert.ErrorIs(t, err, ErrSampleRate, "rate=%d", rate)
	}
}

func TestSample_RateAndCountConflict(t *testing.T) {
	in := numberedTable(10)

	_, err := Sample(in, SampleOptions{Rate: 50, Count: 3})
	require.ErrorIs(t, err, ErrSampleSpec)

	_, err = Sample(in, SampleOptions{})
	require.ErrorIs(t, err, ErrSampleSpec)
}
