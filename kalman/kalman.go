package kalman

import (
	filter "github.com/milosgajdos/go-kalman"
	"gonum.org/v1/gonum/mat"
)

// Kalman is a linear Kalman Filter which maintains a Gaussian belief
// over a vector state and mutates it in place.
type Kalman interface {
	// Predict propagates the belief through the process model
	Predict(F mat.Matrix, Q mat.Symmetric, c *Control) error
	// Update corrects the belief with a measurement
	Update(H mat.Matrix, R mat.Symmetric, z mat.Vector) error
	// Estimate returns a snapshot of the current belief
	Estimate() filter.Estimate
	// Gain returns Kalman gain
	Gain() mat.Matrix
}

// Control is a control input applied during prediction:
// the state is moved by B*U in addition to the state transition.
type Control struct {
	// B is control matrix
	B mat.Matrix
	// U is control vector
	U mat.Vector
}
