package transform

import "errors"

var (
	// ErrMissingColumn reports that a column the operation requires is absent
	// from the input header.
	ErrMissingColumn = errors.New("required column missing")

	// ErrNotNumeric reports a cell that could not be parsed as a number in a
	// column being collapsed.
	ErrNotNumeric = errors.New("non-numeric value")

	// ErrSampleSpec reports that neither or both of rate and count were given.
	ErrSampleSpec = errors.New("exactly one of rate and count must be set")

	// ErrSampleRate reports a sampling rate outside the open interval (0, 100).
	ErrSampleRate = errors.New("sampling rate must be between 0 and 100 exclusive")

	// ErrSampleCount reports a sample count that is not positive or exceeds the
	// number of available rows.
	ErrSampleCount = errors.New("sample count out of range")
)
