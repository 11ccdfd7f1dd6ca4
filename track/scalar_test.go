package track

import (
	"errors"
	"testing"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/milosgajdos/go-kalman/kalman/skf"
	"github.com/milosgajdos/go-kalman/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScalar(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	moments := sim.AxisX.Project(sim.XBackAndForth())
	truth := make([]float64, len(moments))
	for i, m := range moments {
		truth[i] = m.Value
	}

	syn, err := sim.NewSynthesizer(1, measVariance)
	require.NoError(err)

	steps, err := ScalarSteps(moments, syn, 0.0001, measVariance)
	require.NoError(err)
	require.Len(steps, len(moments))

	f, err := skf.NewWithEstimate(0, 1)
	require.NoError(err)

	r, err := RunScalar(f, steps, truth, Config{Warmup: 10, Threshold: 0.25})
	require.NoError(err)

	assert.Len(r.Points, len(steps))
	assert.True(r.Converged())
	assert.Less(r.MaxPosErr, 0.25)
	assert.Less(r.RMSEPos, 0.1)
	assert.Zero(r.MaxVelErr)

	// variance settles below the measurement variance
	last := r.Points[len(r.Points)-1]
	assert.Less(last.PosVar, measVariance)
	assert.Equal(f.Mean(), last.Position)
}

func TestRunScalarErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := RunScalar(skf.New(), make([]ScalarStep, 2), []float64{1}, Config{})
	assert.Error(err)

	f := skf.New()
	steps := []ScalarStep{
		{Move: 1, MoveVariance: 1, Measurement: 1, MeasurementVariance: 1},
		{Move: 1, MoveVariance: -1, Measurement: 1, MeasurementVariance: 1},
	}
	_, err = RunScalar(f, steps, []float64{1, 2}, Config{})
	assert.True(errors.Is(err, filter.ErrDegenerateNoise))
	assert.ErrorContains(err, "step 1")

	syn, err := sim.NewSynthesizer(1, measVariance)
	assert.NoError(err)
	_, err = ScalarSteps(sim.AxisX.Project(sim.XBackAndForth()), syn, -1, measVariance)
	assert.Error(err)
}
