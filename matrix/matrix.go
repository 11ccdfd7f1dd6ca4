package matrix

import (
	"math"

	filter "github.com/milosgajdos/go-kalman"
	mx "github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// Identity returns n x n identity matrix.
// It panics if n is not positive.
func Identity(n int) *mat.Dense {
	eye, err := mx.NewDenseValIdentity(n, 1.0)
	if err != nil {
		panic(err)
	}

	return eye
}

// CheckDims checks if m has rows x cols dimensions.
// It returns *filter.DimError if m is nil or its dimensions differ.
func CheckDims(name string, m mat.Matrix, rows, cols int) error {
	if m == nil {
		return &filter.DimError{Name: name, WantRows: rows, WantCols: cols}
	}

	r, c := m.Dims()
	if r != rows || c != cols {
		return &filter.DimError{Name: name, Rows: r, Cols: c, WantRows: rows, WantCols: cols}
	}

	return nil
}

// CheckVec checks if v has length n.
// It returns *filter.DimError if v is nil or its length differs.
func CheckVec(name string, v mat.Vector, n int) error {
	if v == nil {
		return &filter.DimError{Name: name, WantRows: n, WantCols: 1}
	}

	if v.Len() != n {
		return &filter.DimError{Name: name, Rows: v.Len(), Cols: 1, WantRows: n, WantCols: 1}
	}

	return nil
}

// ToSymDense returns the symmetric part of a square matrix m, (m + m')/2, as a new symmetric matrix.
// It panics if m is not square.
func ToSymDense(m mat.Matrix) *mat.SymDense {
	r, c := m.Dims()
	if r != c {
		panic(mat.ErrSquare)
	}

	sym := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			sym.SetSym(i, j, (m.At(i, j)+m.At(j, i))/2)
		}
	}

	return sym
}

// IsFinite returns true if none of the elements of m is NaN or Inf.
func IsFinite(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}

	return true
}
