package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// System is a linear plant with state matrix A, input matrix B and output matrix C.
// B and C are optional.
type System struct {
	// A propagates the state
	A *mat.Dense
	// B maps inputs to the state
	B *mat.Dense
	// C maps the state to the outputs
	C *mat.Dense
}

// newSystem copies the supplied matrices into a new System.
// It returns error if A is nil or not square, or if B or C do not agree with A.
func newSystem(A, B, C *mat.Dense) (System, error) {
	if A == nil {
		return System{}, fmt.Errorf("system matrix must be defined for a model")
	}

	nx, c := A.Dims()
	if nx != c {
		return System{}, fmt.Errorf("invalid system matrix dimensions: [%d x %d]", nx, c)
	}

	sys := System{A: mat.DenseCopyOf(A)}
	if B != nil {
		if r, _ := B.Dims(); r != nx {
			return System{}, fmt.Errorf("invalid input matrix rows: %d, expected %d", r, nx)
		}
		sys.B = mat.DenseCopyOf(B)
	}
	if C != nil {
		if _, c := C.Dims(); c != nx {
			return System{}, fmt.Errorf("invalid output matrix columns: %d, expected %d", c, nx)
		}
		sys.C = mat.DenseCopyOf(C)
	}

	return sys, nil
}

// Dims returns state length nx, input length nu and output length ny.
func (s System) Dims() (nx, nu, ny int) {
	nx, _ = s.A.Dims()
	if s.B != nil {
		_, nu = s.B.Dims()
	}
	if s.C != nil {
		ny, _ = s.C.Dims()
	}
	return nx, nu, ny
}

// SystemMatrix returns state matrix A.
func (s System) SystemMatrix() mat.Matrix { return s.A }

// OutputMatrix returns output matrix C or nil if the system has no outputs.
func (s System) OutputMatrix() mat.Matrix {
	if s.C == nil {
		return nil
	}
	return s.C
}

// Observe returns the outputs C*x of state x.
func (s System) Observe(x mat.Vector) (mat.Vector, error) {
	nx, _, ny := s.Dims()
	if s.C == nil {
		return nil, fmt.Errorf("system has no output matrix")
	}

	if x.Len() != nx {
		return nil, fmt.Errorf("invalid state vector length: %d, expected %d", x.Len(), nx)
	}

	y := mat.NewVecDense(ny, nil)
	y.MulVec(s.C, x)

	return y, nil
}
