package model

import (
	"fmt"

	"github.com/milosgajdos/go-kalman/matrix"
	"github.com/milosgajdos/go-kalman/sim"
	"gonum.org/v1/gonum/mat"
)

// Kinematic is a kinematic model of a single axis of motion.
// Its state is [position, velocity] for order 1 and [position, velocity, acceleration] for order 2.
type Kinematic struct {
	sys *sim.Continuous
	// order is the highest modelled derivative of position
	order int
	// accel is the process noise variance of the highest derivative
	accel float64
	// noise is the measurement noise variance of every sensor
	noise float64
}

// NewKinematic creates new Kinematic model of the given order and returns it.
// accel is the variance of the process noise and noise is the variance of the measurements.
// It returns error if order is not 1 or 2 or if any of the variances is negative.
func NewKinematic(order int, accel, noise float64) (*Kinematic, error) {
	if order != 1 && order != 2 {
		return nil, fmt.Errorf("unsupported kinematic order: %d", order)
	}

	if accel < 0 {
		return nil, fmt.Errorf("invalid process noise variance: %v", accel)
	}

	if noise <= 0 {
		return nil, fmt.Errorf("invalid measurement noise variance: %v", noise)
	}

	n := order + 1

	// dx/dt = A*x where A shifts each derivative one position up
	A := mat.NewDense(n, n, nil)
	for i := 0; i < n-1; i++ {
		A.Set(i, i+1, 1.0)
	}

	// every state component is an output, measurements select some of them
	C := matrix.Identity(n)

	sys, err := sim.NewContinuous(A, nil, C)
	if err != nil {
		return nil, err
	}

	return &Kinematic{
		sys:   sys,
		order: order,
		accel: accel,
		noise: noise,
	}, nil
}

// Dim returns the state dimension.
func (k *Kinematic) Dim() int {
	return k.order + 1
}

// Transition returns state transition matrix for time step dt.
func (k *Kinematic) Transition(dt float64) (mat.Matrix, error) {
	dsys, err := k.sys.ToDiscrete(dt)
	if err != nil {
		return nil, err
	}

	return dsys.SystemMatrix(), nil
}

// ProcessNoise returns process noise covariance for time step dt.
func (k *Kinematic) ProcessNoise(dt float64) (mat.Symmetric, error) {
	return WhiteNoise(k.Dim(), dt, k.accel)
}

// Measurement returns observation matrix H, measurement covariance R and measurement vector z
// built from the fields observed in m. Acceleration is ignored by order 1 models.
// It returns false if m does not observe any modelled state component.
func (k *Kinematic) Measurement(m sim.Measurement) (mat.Matrix, mat.Symmetric, mat.Vector, bool) {
	var idx []int
	var vals []float64

	for i, v := range []*float64{m.Position, m.Velocity, m.Acceleration} {
		if v == nil || i >= k.Dim() {
			continue
		}
		idx = append(idx, i)
		vals = append(vals, *v)
	}

	if len(idx) == 0 {
		return nil, nil, nil, false
	}

	// idx are distinct and in range
	S, _ := Observe(k.Dim(), idx...)

	// H selects the observed outputs of the system
	H := &mat.Dense{}
	H.Mul(S, k.sys.OutputMatrix())

	return H, Diag(len(idx), k.noise), mat.NewVecDense(len(vals), vals), true
}
