package track

import (
	"fmt"

	"github.com/milosgajdos/go-kalman/kalman/skf"
	"github.com/milosgajdos/go-kalman/sim"
)

// ScalarStep is a single move and measurement of a univariate filter.
type ScalarStep struct {
	// Move is the displacement predicted by the movement model
	Move float64
	// MoveVariance is the variance of Move
	MoveVariance float64
	// Measurement is the measured position
	Measurement float64
	// MeasurementVariance is the variance of Measurement
	MeasurementVariance float64
}

// ScalarSteps builds steps from truth using noisy displacements with variance moveVar
// and position measurements drawn by syn whose variance is measVar.
func ScalarSteps(truth []sim.Moment, syn *sim.Synthesizer, moveVar, measVar float64) ([]ScalarStep, error) {
	moves, err := syn.Displacements(truth, moveVar)
	if err != nil {
		return nil, err
	}

	meas := syn.Regular(truth)

	steps := make([]ScalarStep, len(truth))
	for i := range truth {
		steps[i] = ScalarStep{
			Move:                moves[i],
			MoveVariance:        moveVar,
			Measurement:         *meas[i].Position,
			MeasurementVariance: measVar,
		}
	}

	return steps, nil
}

// RunScalar predicts and then updates f for every step and scores the estimates against truth.
// The time of a step is its index, so Config.Warmup is counted in steps.
// It returns error if the number of steps and truth values differ or if the filter fails.
func RunScalar(f *skf.KF, steps []ScalarStep, truth []float64, c Config) (*Report, error) {
	if len(steps) != len(truth) {
		return nil, fmt.Errorf("step count %d differs from truth count %d", len(steps), len(truth))
	}

	log := c.logger()
	r := &Report{Threshold: c.Threshold}

	for i, s := range steps {
		if err := f.Predict(s.Move, s.MoveVariance); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		if err := f.Update(s.Measurement, s.MeasurementVariance); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		t := float64(i)
		r.Points = append(r.Points, Point{
			Time:     t,
			Truth:    sim.Moment{Time: t, Value: truth[i]},
			Position: f.Mean(),
			PosVar:   f.Variance(),
		})

		log.Debug("update", "step", i, "mean", f.Mean(), "variance", f.Variance(), "gain", f.Gain())
	}

	r.score(c.Warmup, false)
	log.Info("tracking finished", "report", r)

	return r, nil
}
