package kf

import (
	"fmt"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/milosgajdos/go-kalman/estimate"
	"github.com/milosgajdos/go-kalman/kalman"
	"github.com/milosgajdos/go-kalman/matrix"
	"gonum.org/v1/gonum/mat"
)

// KF is Kalman Filter
type KF struct {
	// x is KF state estimate
	x *mat.VecDense
	// p is KF state covariance matrix
	p *mat.SymDense
	// b is control matrix used when no control is supplied
	b *mat.Dense
	// u is control vector used when no control is supplied
	u *mat.VecDense
	// inn is innovation vector of the last update
	inn *mat.VecDense
	// k is Kalman gain of the last update
	k *mat.Dense
}

// New creates new KF with dim dimensional state initialized to zero mean and identity covariance.
// It returns error if dim is not a positive integer.
func New(dim int) (*KF, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid state dimension: %d", dim)
	}

	return NewWithState(mat.NewVecDense(dim, nil))
}

// NewWithState creates new KF with initial state x and identity covariance.
// It returns error if x is nil or empty.
func NewWithState(x mat.Vector) (*KF, error) {
	if x == nil || x.Len() == 0 {
		return nil, fmt.Errorf("invalid initial state: %v", x)
	}

	return newKF(x, matrix.Identity(x.Len()))
}

// NewWithInitCond creates new KF and returns it.
// It accepts the following parameters:
//   - init:   initial condition of the filter: its state and covariance
//
// It returns error if either of the following conditions is met:
//   - initial state is empty or contains non-finite values
//   - initial covariance dimensions do not match the state dimension
func NewWithInitCond(init filter.InitCond) (*KF, error) {
	if init == nil {
		return nil, fmt.Errorf("invalid initial condition: %v", init)
	}

	x, cov := init.State(), init.Cov()
	if x == nil || x.Len() == 0 {
		return nil, fmt.Errorf("invalid initial state: %v", x)
	}

	if err := matrix.CheckDims("P", cov, x.Len(), x.Len()); err != nil {
		return nil, err
	}

	return newKF(x, cov)
}

func newKF(x mat.Vector, cov mat.Matrix) (*KF, error) {
	if !matrix.IsFinite(x) || !matrix.IsFinite(cov) {
		return nil, fmt.Errorf("%w: non-finite initial condition", filter.ErrDegenerateNoise)
	}

	n := x.Len()

	state := mat.NewVecDense(n, nil)
	state.CopyVec(x)

	return &KF{
		x: state,
		p: matrix.ToSymDense(cov),
		b: matrix.Identity(n),
		u: mat.NewVecDense(n, nil),
	}, nil
}

// Predict propagates the filter state through the state transition matrix F with process noise covariance Q:
//
//	x = F*x + B*u
//	P = F*P*F' + Q
//
// If c is nil, B is identity and u is zero vector i.e. there is no control input.
// It returns error if the dimensions of any of the supplied parameters do not match the state dimension
// or if Q contains non-finite values. The filter state is not modified on error.
func (k *KF) Predict(F mat.Matrix, Q mat.Symmetric, c *kalman.Control) error {
	n := k.x.Len()

	if err := matrix.CheckDims("F", F, n, n); err != nil {
		return err
	}

	if err := matrix.CheckDims("Q", Q, n, n); err != nil {
		return err
	}

	if !matrix.IsFinite(Q) {
		return fmt.Errorf("%w: non-finite process noise covariance", filter.ErrDegenerateNoise)
	}

	var B mat.Matrix = k.b
	var u mat.Vector = k.u
	if c != nil {
		B, u = c.B, c.U
	}

	if u == nil {
		return &filter.DimError{Name: "u", WantCols: 1}
	}

	if err := matrix.CheckDims("B", B, n, u.Len()); err != nil {
		return err
	}

	// F*x + B*u
	x := mat.NewVecDense(n, nil)
	x.MulVec(F, k.x)
	bu := mat.NewVecDense(n, nil)
	bu.MulVec(B, u)
	x.AddVec(x, bu)

	// F*P*F' + Q
	fp := &mat.Dense{}
	fp.Mul(F, k.p)
	cov := &mat.Dense{}
	cov.Mul(fp, F.T())
	cov.Add(cov, Q)

	if !matrix.IsFinite(x) || !matrix.IsFinite(cov) {
		return fmt.Errorf("%w: non-finite prediction", filter.ErrDegenerateNoise)
	}

	k.x = x
	k.p = matrix.ToSymDense(cov)

	return nil
}

// Update corrects the filter state using measurement z observed through observation matrix H
// with measurement noise covariance R:
//
//	S = H*P*H' + R
//	K = P*H'*inv(S)
//	y = z - H*x
//	x = x + K*y
//	P = (I - K*H)*P
//
// It returns error if the dimensions of the supplied parameters do not agree, if R contains non-finite values
// or if S can not be inverted. The filter state is not modified on error.
func (k *KF) Update(H mat.Matrix, R mat.Symmetric, z mat.Vector) error {
	n := k.x.Len()

	if H == nil {
		return &filter.DimError{Name: "H", WantCols: n}
	}

	ny, _ := H.Dims()
	if err := matrix.CheckDims("H", H, ny, n); err != nil {
		return err
	}

	if err := matrix.CheckDims("R", R, ny, ny); err != nil {
		return err
	}

	if err := matrix.CheckVec("z", z, ny); err != nil {
		return err
	}

	if !matrix.IsFinite(R) {
		return fmt.Errorf("%w: non-finite measurement noise covariance", filter.ErrDegenerateNoise)
	}

	// P*H'
	pht := &mat.Dense{}
	pht.Mul(k.p, H.T())

	// H*P*H' + R
	s := &mat.Dense{}
	s.Mul(H, pht)
	s.Add(s, R)

	sInv := &mat.Dense{}
	if err := sInv.Inverse(s); err != nil {
		return fmt.Errorf("%w: %v", filter.ErrSingularCov, err)
	}

	// Kalman gain
	gain := &mat.Dense{}
	gain.Mul(pht, sInv)

	// innovation vector
	hx := mat.NewVecDense(ny, nil)
	hx.MulVec(H, k.x)
	inn := mat.NewVecDense(ny, nil)
	inn.SubVec(z, hx)

	// x + K*y
	corr := mat.NewVecDense(n, nil)
	corr.MulVec(gain, inn)
	x := mat.NewVecDense(n, nil)
	x.AddVec(k.x, corr)

	// K*H is [n x n] so the identity matches the state dimension
	a := &mat.Dense{}
	a.Mul(gain, H)
	a.Sub(matrix.Identity(n), a)

	cov := &mat.Dense{}
	cov.Mul(a, k.p)

	if !matrix.IsFinite(x) || !matrix.IsFinite(cov) {
		return fmt.Errorf("%w: non-finite correction", filter.ErrSingularCov)
	}

	k.x = x
	k.p = matrix.ToSymDense(cov)
	k.inn = inn
	k.k = gain

	return nil
}

// Estimate returns a snapshot of the current filter estimate.
// Modifying the returned estimate does not affect the filter.
func (k *KF) Estimate() filter.Estimate {
	est, err := estimate.NewBaseWithCov(k.x, k.p)
	if err != nil {
		// state and covariance dimensions are kept in sync by KF
		panic(err)
	}

	return est
}

// Dim returns the filter state dimension
func (k *KF) Dim() int {
	return k.x.Len()
}

// State returns KF state
func (k *KF) State() mat.Vector {
	x := &mat.VecDense{}
	x.CloneFromVec(k.x)

	return x
}

// Cov returns KF covariance
func (k *KF) Cov() mat.Symmetric {
	cov := mat.NewSymDense(k.p.SymmetricDim(), nil)
	cov.CopySym(k.p)

	return cov
}

// SetCov sets KF covariance matrix to cov.
// It returns error if either cov is nil, its dimensions are not the same as KF covariance dimensions
// or it contains non-finite values.
func (k *KF) SetCov(cov mat.Symmetric) error {
	if cov == nil {
		return fmt.Errorf("invalid covariance matrix: %v", cov)
	}

	if cov.SymmetricDim() != k.p.SymmetricDim() {
		return &filter.DimError{
			Name:     "P",
			Rows:     cov.SymmetricDim(),
			Cols:     cov.SymmetricDim(),
			WantRows: k.p.SymmetricDim(),
			WantCols: k.p.SymmetricDim(),
		}
	}

	if !matrix.IsFinite(cov) {
		return fmt.Errorf("%w: non-finite covariance", filter.ErrDegenerateNoise)
	}

	k.p.CopySym(cov)

	return nil
}

// Gain returns Kalman gain of the last update.
// It returns nil if no update has been done.
func (k *KF) Gain() mat.Matrix {
	if k.k == nil {
		return nil
	}

	gain := &mat.Dense{}
	gain.CloneFrom(k.k)

	return gain
}

// Innovation returns innovation vector of the last update.
// It returns nil if no update has been done.
func (k *KF) Innovation() mat.Vector {
	if k.inn == nil {
		return nil
	}

	inn := &mat.VecDense{}
	inn.CloneFromVec(k.inn)

	return inn
}
