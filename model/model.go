// Package model provides kinematic process and measurement models for tracking
// a single axis of motion with a Kalman filter.
package model

import (
	"fmt"

	"github.com/milosgajdos/go-kalman/matrix"
	"gonum.org/v1/gonum/mat"
)

// ConstantVelocity returns state transition matrix of a [position, velocity] state
// moving with constant velocity for dt seconds.
func ConstantVelocity(dt float64) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		1, dt,
		0, 1,
	})
}

// ConstantAcceleration returns state transition matrix of a [position, velocity, acceleration] state
// moving with constant acceleration for dt seconds.
func ConstantAcceleration(dt float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, dt, 0.5 * dt * dt,
		0, 1, dt,
		0, 0, 1,
	})
}

// WhiteNoise returns discrete white noise process covariance of a dim dimensional kinematic state
// sampled every dt seconds, assuming the highest derivative is piecewise constant over the sample
// period with the given variance.
// It returns error if dim is not 2 or 3, or if dt or variance are negative.
func WhiteNoise(dim int, dt, variance float64) (*mat.SymDense, error) {
	if dt < 0 {
		return nil, fmt.Errorf("invalid time step: %v", dt)
	}

	if variance < 0 {
		return nil, fmt.Errorf("invalid noise variance: %v", variance)
	}

	var g []float64
	switch dim {
	case 2:
		g = []float64{0.5 * dt * dt, dt}
	case 3:
		g = []float64{0.5 * dt * dt, dt, 1}
	default:
		return nil, fmt.Errorf("unsupported white noise dimension: %d", dim)
	}

	// Q = G*G'*variance
	q := mat.NewSymDense(dim, nil)
	q.SymOuterK(variance, mat.NewVecDense(dim, g))

	return q, nil
}

// Observe returns [len(idx) x dim] observation matrix which selects the state components idx.
// It returns error if dim is not positive, idx is empty, or any index is out of range or repeated.
func Observe(dim int, idx ...int) (*mat.Dense, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid state dimension: %d", dim)
	}

	if len(idx) == 0 {
		return nil, fmt.Errorf("no observed state components")
	}

	seen := make(map[int]bool, len(idx))
	H := mat.NewDense(len(idx), dim, nil)
	for r, c := range idx {
		if c < 0 || c >= dim {
			return nil, fmt.Errorf("state component %d out of range [0, %d)", c, dim)
		}

		if seen[c] {
			return nil, fmt.Errorf("state component %d observed twice", c)
		}
		seen[c] = true

		H.Set(r, c, 1.0)
	}

	return H, nil
}

// Diag returns n x n diagonal covariance with variance on the diagonal.
// It panics if n is not positive.
func Diag(n int, variance float64) *mat.SymDense {
	cov := matrix.ToSymDense(matrix.Identity(n))
	cov.ScaleSym(variance, cov)

	return cov
}
