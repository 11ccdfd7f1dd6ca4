package estimate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Scalar is an estimate of a single quantity: its mean and variance.
type Scalar struct {
	mean     float64
	variance float64
}

// NewScalar returns scalar estimate with the given mean and variance.
func NewScalar(mean, variance float64) *Scalar {
	return &Scalar{
		mean:     mean,
		variance: variance,
	}
}

// Mean returns estimated mean
func (s *Scalar) Mean() float64 {
	return s.mean
}

// Variance returns estimated variance
func (s *Scalar) Variance() float64 {
	return s.variance
}

// Val returns the mean as a vector of length 1
func (s *Scalar) Val() mat.Vector {
	return mat.NewVecDense(1, []float64{s.mean})
}

// Cov returns the variance as a 1x1 symmetric matrix
func (s *Scalar) Cov() mat.Symmetric {
	return mat.NewSymDense(1, []float64{s.variance})
}

// String implements the Stringer interface.
func (s *Scalar) String() string {
	return fmt.Sprintf("Scalar{Mean=%v Variance=%v}", s.mean, s.variance)
}
