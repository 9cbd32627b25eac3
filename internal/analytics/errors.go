package analytics

import (
	"errors"
)

var (
	// ErrInsufficientData is returned when a computation has fewer
	// observations than it needs.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMisalignedSeries is returned when factor and security series do
	// not share identical timestamps. Alignment is the caller's job; the
	// core never aligns silently.
	ErrMisalignedSeries = errors.New("misaligned series")
)
