package filter

import (
	"errors"
	"fmt"
)

var (
	// ErrDimMismatch is returned when matrix or vector dimensions do not agree.
	ErrDimMismatch = errors.New("dimension mismatch")
	// ErrSingularCov is returned when innovation covariance can not be inverted.
	ErrSingularCov = errors.New("singular innovation covariance")
	// ErrDegenerateNoise is returned when noise parameters are invalid,
	// e.g. negative or zero measurement variance.
	ErrDegenerateNoise = errors.New("degenerate noise")
)

// DimError describes a dimension mismatch of a named matrix or vector.
// Vectors are reported as single column matrices.
type DimError struct {
	// Name is the name of the offending matrix or vector
	Name string
	// Rows and Cols are the supplied dimensions
	Rows, Cols int
	// WantRows and WantCols are the expected dimensions
	WantRows, WantCols int
}

// Error implements error interface.
func (e *DimError) Error() string {
	return fmt.Sprintf("%v: %s is [%d x %d], expected [%d x %d]",
		ErrDimMismatch, e.Name, e.Rows, e.Cols, e.WantRows, e.WantCols)
}

// Unwrap returns ErrDimMismatch so DimError can be matched with errors.Is.
func (e *DimError) Unwrap() error {
	return ErrDimMismatch
}
