package track

import (
	"fmt"

	"github.com/milosgajdos/go-kalman/sim"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
)

// Plot plots the estimated positions of r against the ground truth and the position measurements in meas.
// It returns error if r has no points or meas has no position measurements.
func (r *Report) Plot(title string, meas []sim.Measurement) (*plot.Plot, error) {
	if len(r.Points) == 0 {
		return nil, fmt.Errorf("no estimates to plot")
	}

	var observed []float64
	for _, m := range meas {
		if m.Position != nil {
			observed = append(observed, m.Time, *m.Position)
		}
	}

	if len(observed) == 0 {
		return nil, fmt.Errorf("no position measurements to plot")
	}

	truth := mat.NewDense(len(r.Points), 2, nil)
	est := mat.NewDense(len(r.Points), 2, nil)
	for i, p := range r.Points {
		truth.SetRow(i, []float64{p.Truth.Time, p.Truth.Value})
		est.SetRow(i, []float64{p.Time, p.Position})
	}

	return sim.NewTrackPlot(title, truth, mat.NewDense(len(observed)/2, 2, observed), est)
}
