package sim

import (
	"fmt"

	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// steps is the number of trapezoid intervals used to integrate
// the discrete control matrix of a system with singular A.
const steps = 100

// Continuous is a linear continuous-time system
type Continuous struct {
	System
}

// NewContinuous creates new Continuous system and returns it:
//
//	dx/dt = A*x + B*u
//	y = C*x
//
// It returns error if A is nil or not square or if B or C do not agree with A.
func NewContinuous(A, B, C *mat.Dense) (*Continuous, error) {
	sys, err := newSystem(A, B, C)
	if err != nil {
		return nil, err
	}

	return &Continuous{System: sys}, nil
}

// ToDiscrete creates a discrete-time model from a continuous time model
// using Ts as the sampling time.
//
//	Ad = exp(A*Ts)
//	Bd = integrate(exp(A*t), 0, Ts) * B
//
// It returns error if Ts is negative.
func (ct *Continuous) ToDiscrete(Ts float64) (*Discrete, error) {
	if Ts < 0 {
		return nil, fmt.Errorf("invalid sampling time: %v", Ts)
	}

	nx, _, _ := ct.Dims()
	// ct was validated on creation
	dsys, _ := newSystem(ct.A, ct.B, ct.C)
	// See Discrete-Time Control Systems by Katsuhiko Ogata, Eq. (5-73)
	dsys.A.Scale(Ts, ct.A)
	dsys.A.Exp(dsys.A)

	if ct.B == nil {
		return &Discrete{dsys}, nil
	}

	eye, err := matrix.NewDenseValIdentity(nx, 1.0)
	if err != nil {
		return nil, err
	}

	// Given A is not singular, Bd(Ts) = (exp(A*Ts) - I)*inv(A)*B, Eq. (5-74 bis) Ogata
	Ainv := mat.NewDense(nx, nx, nil)
	if err := Ainv.Inverse(ct.A); err == nil {
		Aaux := mat.NewDense(nx, nx, nil)
		Aaux.Sub(dsys.A, eye)
		Aaux.Mul(Aaux, Ainv)
		dsys.B.Mul(Aaux, ct.B)
		return &Discrete{dsys}, nil
	}

	// A is singular: integrate exp(A*t) over [0, Ts] with the trapezoid rule
	dt := Ts / steps
	Asum := mat.NewDense(nx, nx, nil)
	Aaux := mat.NewDense(nx, nx, nil)
	for i := 0; i <= steps; i++ {
		Aaux.Scale(dt*float64(i), ct.A)
		Aaux.Exp(Aaux)
		w := dt
		if i == 0 || i == steps {
			w = dt / 2
		}
		Aaux.Scale(w, Aaux)
		Asum.Add(Asum, Aaux)
	}
	dsys.B.Mul(Asum, ct.B)

	return &Discrete{dsys}, nil
}
