package sim

import "gonum.org/v1/gonum/mat"

// InitCond implements filter.InitCond
type InitCond struct {
	state *mat.VecDense
	cov   *mat.SymDense
}

// NewInitCond creates new InitCond and returns it
func NewInitCond(state mat.Vector, cov mat.Symmetric) *InitCond {
	s := mat.NewVecDense(state.Len(), nil)
	s.CopyVec(state)

	c := mat.NewSymDense(cov.SymmetricDim(), nil)
	c.CopySym(cov)

	return &InitCond{
		state: s,
		cov:   c,
	}
}

// MomentInitCond returns initial condition of a dim dimensional kinematic state
// [value, velocity, acceleration] taken from m with isotropic covariance variance*I.
// dim is clamped to [1, 3].
func MomentInitCond(m Moment, dim int, variance float64) *InitCond {
	dim = min(max(dim, 1), 3)

	vals := []float64{m.Value, m.Velocity, m.Acceleration}[:dim]
	cov := mat.NewSymDense(dim, nil)
	for i := 0; i < dim; i++ {
		cov.SetSym(i, i, variance)
	}

	return &InitCond{
		state: mat.NewVecDense(dim, vals),
		cov:   cov,
	}
}

// State returns initial state
func (c *InitCond) State() mat.Vector {
	state := mat.NewVecDense(c.state.Len(), nil)
	state.CopyVec(c.state)

	return state
}

// Cov returns initial covariance
func (c *InitCond) Cov() mat.Symmetric {
	cov := mat.NewSymDense(c.cov.SymmetricDim(), nil)
	cov.CopySym(c.cov)

	return cov
}
