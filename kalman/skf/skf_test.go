package skf

import (
	"errors"
	"math"
	"testing"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/milosgajdos/go-kalman/rand"
	"github.com/stretchr/testify/assert"
)

func TestSKFNew(t *testing.T) {
	assert := assert.New(t)

	f := New()
	assert.Equal(0.0, f.Mean())
	assert.Equal(1.0, f.Variance())
	assert.Equal(0.0, f.Gain())

	f, err := NewWithEstimate(2.0, 0.5)
	assert.NoError(err)
	assert.Equal(2.0, f.Mean())
	assert.Equal(0.5, f.Variance())

	for _, test := range []struct {
		mean     float64
		variance float64
	}{
		{mean: 0, variance: -1},
		{mean: math.NaN(), variance: 1},
		{mean: math.Inf(1), variance: 1},
		{mean: 0, variance: math.Inf(1)},
	} {
		f, err := NewWithEstimate(test.mean, test.variance)
		assert.Nil(f)
		assert.True(errors.Is(err, filter.ErrDegenerateNoise))
	}
}

func TestSKFPredict(t *testing.T) {
	assert := assert.New(t)

	f, err := NewWithEstimate(1.0, 2.0)
	assert.NoError(err)

	assert.NoError(f.Predict(0.5, 0.25))
	assert.Equal(1.5, f.Mean())
	assert.Equal(2.25, f.Variance())

	// invalid movement leaves the estimate untouched
	err = f.Predict(1.0, -0.1)
	assert.True(errors.Is(err, filter.ErrDegenerateNoise))
	assert.Equal(1.5, f.Mean())
	assert.Equal(2.25, f.Variance())

	err = f.Predict(math.NaN(), 0.1)
	assert.True(errors.Is(err, filter.ErrDegenerateNoise))
	assert.Equal(1.5, f.Mean())
}

func TestSKFUpdate(t *testing.T) {
	assert := assert.New(t)

	f, err := NewWithEstimate(0.0, 1.0)
	assert.NoError(err)

	assert.NoError(f.Update(2.0, 1.0))
	assert.InDelta(0.5, f.Gain(), 1e-12)
	assert.InDelta(1.0, f.Mean(), 1e-12)
	assert.InDelta(0.5, f.Variance(), 1e-12)

	for _, variance := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		err = f.Update(3.0, variance)
		assert.True(errors.Is(err, filter.ErrDegenerateNoise))
		assert.InDelta(1.0, f.Mean(), 1e-12)
		assert.InDelta(0.5, f.Variance(), 1e-12)
	}

	// certain prior ignores the measurement
	f, err = NewWithEstimate(4.0, 0.0)
	assert.NoError(err)
	assert.NoError(f.Update(10.0, 1.0))
	assert.Equal(0.0, f.Gain())
	assert.Equal(4.0, f.Mean())
	assert.Equal(0.0, f.Variance())
}

func TestSKFGainBounds(t *testing.T) {
	assert := assert.New(t)

	for _, prior := range []float64{0, 1e-9, 0.01, 1, 100, 1e9} {
		for _, meas := range []float64{1e-9, 0.01, 1, 100, 1e9} {
			f, err := NewWithEstimate(0, prior)
			assert.NoError(err)
			assert.NoError(f.Update(1, meas))
			assert.True(f.Gain() >= 0 && f.Gain() <= 1, "gain %v out of bounds", f.Gain())
		}
	}
}

func TestSKFVarianceMonotonic(t *testing.T) {
	assert := assert.New(t)

	f := New()
	last := f.Variance()
	for i := 0; i < 50; i++ {
		assert.NoError(f.Update(f.Mean(), 0.1))
		assert.True(f.Variance() <= last)
		last = f.Variance()
	}

	for i := 0; i < 50; i++ {
		assert.NoError(f.Predict(0, 0.1))
		assert.True(f.Variance() >= last)
		last = f.Variance()
	}
}

func TestSKFConvergence(t *testing.T) {
	assert := assert.New(t)

	truth := 5.0
	measVar := 0.01
	src := rand.NewSource(1)

	f, err := NewWithEstimate(-100.0, 1000.0)
	assert.NoError(err)

	for i := 0; i < 100; i++ {
		assert.NoError(f.Update(src.Normal(truth, measVar), measVar))
		if i >= 5 {
			assert.Less(math.Abs(f.Mean()-truth), 0.25, "update %d", i)
		}
	}
	assert.Less(f.Variance(), measVar)
}

func TestSKFSteadyStateVariance(t *testing.T) {
	assert := assert.New(t)

	q, r := 0.01, 0.01
	f := New()
	for i := 0; i < 200; i++ {
		assert.NoError(f.Predict(0, q))
		assert.NoError(f.Update(0, r))
	}

	// fixed point of P = (P+q)*r/(P+q+r)
	want := (-q + math.Sqrt(q*q+4*q*r)) / 2
	assert.InDelta(want, f.Variance(), 1e-9)
}

func TestSKFOrder(t *testing.T) {
	assert := assert.New(t)

	a := New()
	assert.NoError(a.Predict(1, 1))
	assert.NoError(a.Update(3, 1))
	assert.InDelta(7.0/3.0, a.Mean(), 1e-12)
	assert.InDelta(2.0/3.0, a.Variance(), 1e-12)

	b := New()
	assert.NoError(b.Update(3, 1))
	assert.NoError(b.Predict(1, 1))
	assert.InDelta(2.5, b.Mean(), 1e-12)
	assert.InDelta(1.5, b.Variance(), 1e-12)
}

func TestSKFEstimate(t *testing.T) {
	assert := assert.New(t)

	f, err := NewWithEstimate(1.0, 2.0)
	assert.NoError(err)

	est := f.Estimate()
	assert.Equal(1.0, est.Mean())
	assert.Equal(2.0, est.Variance())

	assert.NoError(f.Predict(1.0, 1.0))
	// snapshot does not follow the filter
	assert.Equal(1.0, est.Mean())
	assert.Equal(2.0, est.Variance())
}

func TestSKFOverflow(t *testing.T) {
	assert := assert.New(t)

	f := New()
	assert.NoError(f.Predict(0, math.MaxFloat64))

	// variance overflows to +Inf
	err := f.Predict(0, math.MaxFloat64)
	assert.True(errors.Is(err, filter.ErrDegenerateNoise))
	assert.Equal(0.0, f.Mean())
	assert.Equal(math.MaxFloat64, f.Variance())

	// the next update stays finite
	assert.NoError(f.Update(1, 1))
	assert.False(math.IsNaN(f.Gain()))
	assert.False(math.IsNaN(f.Mean()) || math.IsInf(f.Mean(), 0))
	assert.False(math.IsNaN(f.Variance()) || math.IsInf(f.Variance(), 0))

	// innovation overflows the corrected mean
	f, err = NewWithEstimate(-math.MaxFloat64, 1)
	assert.NoError(err)
	err = f.Update(math.MaxFloat64, 1)
	assert.True(errors.Is(err, filter.ErrDegenerateNoise))
	assert.Equal(-math.MaxFloat64, f.Mean())
	assert.Equal(1.0, f.Variance())
	assert.Equal(0.0, f.Gain())
}
