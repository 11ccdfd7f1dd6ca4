package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Discrete is a linear discrete-time system
//
//	x[n+1] = A*x[n] + B*u[n]
//	y[n] = C*x[n]
type Discrete struct {
	System
}

// NewDiscrete creates new Discrete system and returns it.
// It returns error if A is nil or not square or if B or C do not agree with A.
func NewDiscrete(A, B, C *mat.Dense) (*Discrete, error) {
	sys, err := newSystem(A, B, C)
	if err != nil {
		return nil, err
	}

	return &Discrete{System: sys}, nil
}

// Propagate returns the state following x given input u.
// u may be nil when there is no input.
func (ds *Discrete) Propagate(x, u mat.Vector) (mat.Vector, error) {
	nx, nu, _ := ds.Dims()
	if x.Len() != nx {
		return nil, fmt.Errorf("invalid state vector length: %d, expected %d", x.Len(), nx)
	}

	out := mat.NewVecDense(nx, nil)
	out.MulVec(ds.A, x)

	if u == nil {
		return out, nil
	}

	if ds.B == nil || u.Len() != nu {
		return nil, fmt.Errorf("invalid input vector length: %d, expected %d", u.Len(), nu)
	}

	bu := mat.NewVecDense(nx, nil)
	bu.MulVec(ds.B, u)
	out.AddVec(out, bu)

	return out, nil
}
