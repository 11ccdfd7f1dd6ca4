// Package track drives Kalman filters over measurement streams and scores the estimates
// against ground truth.
package track

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/milosgajdos/go-kalman/kalman"
	"github.com/milosgajdos/go-kalman/sim"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Model is a process and measurement model of a tracked axis.
type Model interface {
	// Dim returns the state dimension
	Dim() int
	// Transition returns state transition matrix for time step dt
	Transition(dt float64) (mat.Matrix, error)
	// ProcessNoise returns process noise covariance for time step dt
	ProcessNoise(dt float64) (mat.Symmetric, error)
	// Measurement returns observation matrix, measurement covariance and measurement vector of m.
	// It returns false if m does not observe the modelled state.
	Measurement(m sim.Measurement) (mat.Matrix, mat.Symmetric, mat.Vector, bool)
}

// Config configures a tracking run.
type Config struct {
	// Warmup is the time in seconds after the first measurement excluded from error statistics
	Warmup float64
	// Threshold is the maximum tolerated absolute position error
	Threshold float64
	// Logger receives per step debug records and a summary; nil discards them
	Logger *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

// Point is an estimate recorded after a filter update.
type Point struct {
	// Time of the measurement
	Time float64
	// Truth is the ground truth closest to Time
	Truth sim.Moment
	// Position and Velocity are the estimated values
	Position, Velocity float64
	// PosVar and VelVar are the estimate variances
	PosVar, VelVar float64
}

// Report summarizes a tracking run.
type Report struct {
	// Points are the recorded estimates
	Points []Point
	// Skipped counts measurements which did not observe the modelled state
	Skipped int
	// Evaluated counts points included in error statistics
	Evaluated int
	// Failures counts evaluated points whose position error exceeds Threshold
	Failures int
	// Threshold is the tolerated absolute position error
	Threshold float64
	// MaxPosErr and MaxVelErr are the maximum absolute errors of evaluated points
	MaxPosErr, MaxVelErr float64
	// RMSEPos and RMSEVel are the root mean square errors of evaluated points
	RMSEPos, RMSEVel float64
}

// Converged returns true if at least one point was evaluated and none exceeded the threshold.
func (r *Report) Converged() bool {
	return r.Evaluated > 0 && r.Failures == 0
}

// LogValue implements slog.LogValuer.
func (r *Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("points", len(r.Points)),
		slog.Int("skipped", r.Skipped),
		slog.Int("evaluated", r.Evaluated),
		slog.Int("failures", r.Failures),
		slog.Float64("max_pos_err", r.MaxPosErr),
		slog.Float64("max_vel_err", r.MaxVelErr),
		slog.Float64("rmse_pos", r.RMSEPos),
		slog.Float64("rmse_vel", r.RMSEVel),
	)
}

// Run tracks measurements meas sorted by time with filter f using model m.
// The filter initial condition is taken to be the belief at the time of the first measurement.
// Every following measurement predicts the filter over the time elapsed since the last used
// measurement and then updates it with the observed fields. Measurements which observe nothing
// are skipped. Estimates are scored against the truth closest in time.
// It returns the first filter error wrapped with the measurement index.
func Run(f kalman.Kalman, m Model, meas []sim.Measurement, truth []sim.Moment, c Config) (*Report, error) {
	if n := f.Estimate().Val().Len(); n != m.Dim() {
		return nil, &filter.DimError{Name: "model", Rows: m.Dim(), Cols: 1, WantRows: n, WantCols: 1}
	}

	log := c.logger()
	r := &Report{Threshold: c.Threshold}

	var last float64
	started := false
	for i, ms := range meas {
		H, R, z, ok := m.Measurement(ms)
		if !ok {
			r.Skipped++
			log.Debug("skip", "step", i, "time", ms.Time)
			continue
		}

		if started {
			dt := ms.Time - last
			if dt < 0 {
				return nil, fmt.Errorf("step %d: measurement time %v precedes %v", i, ms.Time, last)
			}

			F, err := m.Transition(dt)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}

			Q, err := m.ProcessNoise(dt)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}

			if err := f.Predict(F, Q, nil); err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
		}

		if err := f.Update(H, R, z); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		last, started = ms.Time, true

		p := point(ms.Time, f)
		if t, ok := sim.Closest(ms.Time, truth); ok {
			p.Truth = t
		}
		r.Points = append(r.Points, p)

		log.Debug("update", "step", i, "time", ms.Time, "observed", z.Len(),
			"position", p.Position, "velocity", p.Velocity, "pos_var", p.PosVar)
	}

	if len(truth) > 0 {
		r.score(c.Warmup, true)
	}
	log.Info("tracking finished", "report", r)

	return r, nil
}

func point(t float64, f kalman.Kalman) Point {
	est := f.Estimate()
	x, cov := est.Val(), est.Cov()

	p := Point{
		Time:     t,
		Position: x.AtVec(0),
		PosVar:   cov.At(0, 0),
	}

	if x.Len() > 1 {
		p.Velocity = x.AtVec(1)
		p.VelVar = cov.At(1, 1)
	}

	return p
}

// score computes error statistics of points recorded at least warmup after the first one.
func (r *Report) score(warmup float64, velocity bool) {
	if len(r.Points) == 0 {
		return
	}

	start := r.Points[0].Time + warmup

	var pos, vel []float64
	for _, p := range r.Points {
		if p.Time < start {
			continue
		}

		e := math.Abs(p.Position - p.Truth.Value)
		if e > r.Threshold {
			r.Failures++
		}
		pos = append(pos, e)
		vel = append(vel, math.Abs(p.Velocity-p.Truth.Velocity))
	}

	r.Evaluated = len(pos)
	if r.Evaluated == 0 {
		return
	}

	n := math.Sqrt(float64(r.Evaluated))
	r.MaxPosErr = floats.Max(pos)
	r.RMSEPos = floats.Norm(pos, 2) / n

	if velocity {
		r.MaxVelErr = floats.Max(vel)
		r.RMSEVel = floats.Norm(vel, 2) / n
	}
}
