package sim

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

var (
	x, u    *mat.VecDense
	A, B, C *mat.Dense
)

func setup() {
	x = mat.NewVecDense(2, []float64{0.5, 0.6})
	u = mat.NewVecDense(1, []float64{-1.0})

	A = mat.NewDense(2, 2, []float64{1.0, 1.0, 0.0, 1.0})
	B = mat.NewDense(2, 1, []float64{0.5, 1.0})
	C = mat.NewDense(1, 2, []float64{1.0, 0.0})
}

func TestMain(m *testing.M) {
	// set up tests
	setup()
	// run the tests
	retCode := m.Run()
	// call with result of m.Run()
	os.Exit(retCode)
}

func TestInitCond(t *testing.T) {
	assert := assert.New(t)

	state := mat.NewVecDense(2, []float64{1.0, 3.0})
	cov := mat.NewSymDense(2, []float64{0.25, 0, 0, 0.25})

	ic := NewInitCond(state, cov)

	s := ic.State()
	for i := 0; i < state.Len(); i++ {
		assert.Equal(state.AtVec(i), s.AtVec(i))
	}

	c := ic.Cov()
	for i := 0; i < cov.SymmetricDim(); i++ {
		for j := 0; j < cov.SymmetricDim(); j++ {
			assert.Equal(cov.At(i, j), c.At(i, j))
		}
	}
}

func TestMomentInitCond(t *testing.T) {
	assert := assert.New(t)

	m := Moment{Time: 1, Value: 2, Velocity: 3, Acceleration: 4}

	for _, test := range []struct {
		dim  int
		want []float64
	}{
		{dim: 1, want: []float64{2}},
		{dim: 2, want: []float64{2, 3}},
		{dim: 3, want: []float64{2, 3, 4}},
		{dim: 5, want: []float64{2, 3, 4}},
		{dim: 0, want: []float64{2}},
	} {
		ic := MomentInitCond(m, test.dim, 0.5)
		s := ic.State()
		assert.Equal(len(test.want), s.Len())
		for i, v := range test.want {
			assert.Equal(v, s.AtVec(i))
		}

		c := ic.Cov()
		assert.Equal(len(test.want), c.SymmetricDim())
		for i := range test.want {
			for j := range test.want {
				if i == j {
					assert.Equal(0.5, c.At(i, j))
					continue
				}
				assert.Equal(0.0, c.At(i, j))
			}
		}
	}
}

func TestNewDiscrete(t *testing.T) {
	assert := assert.New(t)

	f, err := NewDiscrete(A, B, C)
	assert.NotNil(f)
	assert.NoError(err)

	for _, test := range []struct {
		A, B, C *mat.Dense
	}{
		{A: nil, B: B, C: C},
		{A: B, B: B, C: C},
		{A: A, B: mat.NewDense(3, 1, nil), C: C},
		{A: A, B: B, C: mat.NewDense(1, 3, nil)},
	} {
		f, err := NewDiscrete(test.A, test.B, test.C)
		assert.Nil(f)
		assert.Error(err)
	}

	// matrices are copied
	a := mat.DenseCopyOf(A)
	f, err = NewDiscrete(a, nil, nil)
	assert.NoError(err)
	a.Set(0, 0, 10)
	assert.Equal(1.0, f.A.At(0, 0))
}

func TestDiscretePropagate(t *testing.T) {
	assert := assert.New(t)

	f, err := NewDiscrete(A, B, C)
	assert.NoError(err)

	v, err := f.Propagate(x, u)
	assert.NoError(err)
	assert.InDeltaSlice([]float64{0.6, -0.4}, v.(*mat.VecDense).RawVector().Data, 1e-12)

	v, err = f.Propagate(x, nil)
	assert.NoError(err)
	assert.InDeltaSlice([]float64{1.1, 0.6}, v.(*mat.VecDense).RawVector().Data, 1e-12)

	v, err = f.Propagate(x, mat.NewVecDense(10, nil))
	assert.Nil(v)
	assert.Error(err)

	v, err = f.Propagate(mat.NewVecDense(10, nil), u)
	assert.Nil(v)
	assert.Error(err)

	// no input matrix
	noB, err := NewDiscrete(A, nil, C)
	assert.NoError(err)
	v, err = noB.Propagate(x, u)
	assert.Nil(v)
	assert.Error(err)
}

func TestSystemObserve(t *testing.T) {
	assert := assert.New(t)

	f, err := NewDiscrete(A, B, C)
	assert.NoError(err)

	v, err := f.Observe(x)
	assert.NoError(err)
	assert.Equal(1, v.Len())
	assert.InDelta(0.5, v.AtVec(0), 1e-12)

	v, err = f.Observe(mat.NewVecDense(10, nil))
	assert.Nil(v)
	assert.Error(err)

	noC, err := NewDiscrete(A, B, nil)
	assert.NoError(err)
	v, err = noC.Observe(x)
	assert.Nil(v)
	assert.Error(err)
}

func TestSystemMatrices(t *testing.T) {
	assert := assert.New(t)

	f, err := NewDiscrete(A, B, C)
	assert.NoError(err)

	assert.True(mat.Equal(f.SystemMatrix(), A))
	assert.True(mat.Equal(f.OutputMatrix(), C))

	nx, nu, ny := f.Dims()
	assert.Equal(2, nx)
	assert.Equal(1, nu)
	assert.Equal(1, ny)

	empty, err := NewDiscrete(A, nil, nil)
	assert.NoError(err)
	assert.Nil(empty.OutputMatrix())

	nx, nu, ny = empty.Dims()
	assert.Equal(2, nx)
	assert.Zero(nu)
	assert.Zero(ny)
}

func TestContinuousToDiscrete(t *testing.T) {
	assert := assert.New(t)

	// double integrator: A is singular
	a := mat.NewDense(2, 2, []float64{0, 1, 0, 0})
	b := mat.NewDense(2, 1, []float64{0, 1})

	ct, err := NewContinuous(a, b, C)
	assert.NoError(err)

	dt := 0.1
	dsys, err := ct.ToDiscrete(dt)
	assert.NoError(err)
	assert.True(mat.EqualApprox(mat.NewDense(2, 2, []float64{1, dt, 0, 1}), dsys.A, 1e-9))
	assert.True(mat.EqualApprox(mat.NewDense(2, 1, []float64{dt * dt / 2, dt}), dsys.B, 1e-6))

	// continuous model is left intact
	assert.True(mat.Equal(a, ct.A))

	// no control matrix
	ct, err = NewContinuous(a, nil, nil)
	assert.NoError(err)
	dsys, err = ct.ToDiscrete(dt)
	assert.NoError(err)
	assert.Nil(dsys.B)

	// invertible A: exponential decay
	ct, err = NewContinuous(mat.NewDense(1, 1, []float64{-1}), mat.NewDense(1, 1, []float64{1}), nil)
	assert.NoError(err)
	dsys, err = ct.ToDiscrete(1.0)
	assert.NoError(err)
	assert.InDelta(0.36787944117, dsys.A.At(0, 0), 1e-9)
	assert.InDelta(1-0.36787944117, dsys.B.At(0, 0), 1e-9)

	_, err = ct.ToDiscrete(-1)
	assert.Error(err)

	ct, err = NewContinuous(nil, nil, nil)
	assert.Nil(ct)
	assert.Error(err)
}
