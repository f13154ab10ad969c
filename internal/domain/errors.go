package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch signals that two compared vectors differ in length.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrUnsupportedBackend signals an unknown similarity backend identifier.
	ErrUnsupportedBackend = errors.New("unsupported similarity backend")
	// ErrInvalidRequest signals malformed matching input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrProviderUnavailable signals an embedding or keyword provider failure.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// DimensionMismatchError wraps ErrDimensionMismatch with both lengths.
type DimensionMismatchError struct {
	Left  int
	Right int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: %d vs %d", ErrDimensionMismatch.Error(), e.Left, e.Right)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// NewDimensionMismatch creates a dimension mismatch error.
func NewDimensionMismatch(left, right int) error {
	return &DimensionMismatchError{Left: left, Right: right}
}
