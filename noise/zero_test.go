package noise

import (
	"testing"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewZero(t *testing.T) {
	assert := assert.New(t)

	e, err := NewZero(2)
	assert.NotNil(e)
	assert.NoError(err)

	for _, size := range []int{0, -10} {
		e, err = NewZero(size)
		assert.Nil(e)
		assert.Error(err)
	}
}

func TestZeroMeanCov(t *testing.T) {
	assert := assert.New(t)

	size := 2
	mean := []float64{0, 0}
	cov := mat.NewSymDense(size, []float64{0, 0, 0, 0})

	e, err := NewZero(size)
	assert.NotNil(e)
	assert.NoError(err)

	eCov := e.Cov()
	assert.Equal(cov.SymmetricDim(), eCov.SymmetricDim())

	rows, cols := eCov.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if eCov.At(r, c) != cov.At(r, c) {
				t.Errorf("Incorrect covariance matrix returned")
			}
		}
	}

	assert.EqualValues(mean, e.Mean())
}

func TestZeroSample(t *testing.T) {
	assert := assert.New(t)

	e, err := NewZero(2)
	assert.NotNil(e)
	assert.NoError(err)

	var n filter.Noise = e
	sample1 := n.Sample()
	r, _ := sample1.Dims()
	assert.Equal(2, r)

	assert.NoError(n.Reset())
	assert.Equal(sample1, n.Sample())
}

func TestZeroString(t *testing.T) {
	assert := assert.New(t)

	str := `Zero{
Mean=[0 0]
Cov=⎡0  0⎤
    ⎣0  0⎦
}`

	e, err := NewZero(2)
	assert.NotNil(e)
	assert.NoError(err)
	assert.Equal(str, e.String())
}
