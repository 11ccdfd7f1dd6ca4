package sim

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// TimeStep is the default ground truth sampling period in seconds.
const TimeStep = 0.01

// Moment is a sample of a single axis of motion at given time.
type Moment struct {
	Time         float64 `json:"time"`
	Value        float64 `json:"value"`
	Velocity     float64 `json:"velocity"`
	Acceleration float64 `json:"acceleration"`
}

// RobotMoment is a sample of planar motion: x and y position and heading h.
type RobotMoment struct {
	Time float64 `json:"time"`
	X    Moment  `json:"x"`
	Y    Moment  `json:"y"`
	H    Moment  `json:"h"`
}

// Axis selects a single axis of RobotMoment.
type Axis int

const (
	// AxisX selects x position
	AxisX Axis = iota
	// AxisY selects y position
	AxisY
	// AxisH selects heading
	AxisH
)

// String implements the Stringer interface.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisH:
		return "h"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Project returns moments of the axis a.
func (a Axis) Project(moments []RobotMoment) []Moment {
	out := make([]Moment, len(moments))
	for i, m := range moments {
		switch a {
		case AxisY:
			out[i] = m.Y
		case AxisH:
			out[i] = m.H
		default:
			out[i] = m.X
		}
	}
	return out
}

// Segment is a period of constant acceleration of all axes.
type Segment struct {
	// Duration of the segment in seconds
	Duration float64
	// X, Y and H are the axes accelerations
	X, Y, H float64
}

// kinematics returns discrete constant acceleration model of one axis with state [value, velocity]
// driven by acceleration input and observing the whole state.
func kinematics(step float64) *Discrete {
	A := mat.NewDense(2, 2, []float64{1, step, 0, 1})
	B := mat.NewDense(2, 1, []float64{0.5 * step * step, step})
	C := mat.NewDense(2, 2, []float64{1, 0, 0, 1})

	sys, err := NewDiscrete(A, B, C)
	if err != nil {
		// the matrices above agree
		panic(err)
	}

	return sys
}

// Move generates moments of an axis moving with constant acceleration acc
// from time start, value and velocity vel for duration seconds sampled every step seconds.
// The first generated moment is one step after start.
func Move(step, start, value, vel, acc, duration float64) []Moment {
	sys := kinematics(step)
	u := mat.NewVecDense(1, []float64{acc})

	var moments []Moment

	t := start
	end := start + duration
	var x mat.Vector = mat.NewVecDense(2, []float64{value, vel})
	for math.Abs(t-end) > step {
		t += step
		// dimensions are fixed by kinematics
		x, _ = sys.Propagate(x, u)
		y, _ := sys.Observe(x)
		moments = append(moments, Moment{
			Time:         t,
			Value:        y.AtVec(0),
			Velocity:     y.AtVec(1),
			Acceleration: acc,
		})
	}

	return moments
}

// Zip combines x, y and heading moments sampled at the same times into robot moments.
// It returns error if the slices have different lengths.
func Zip(x, y, h []Moment) ([]RobotMoment, error) {
	if len(x) != len(y) || len(y) != len(h) {
		return nil, fmt.Errorf("moment counts differ: x=%d y=%d h=%d", len(x), len(y), len(h))
	}

	out := make([]RobotMoment, len(x))
	for i := range x {
		out[i] = RobotMoment{Time: x[i].Time, X: x[i], Y: y[i], H: h[i]}
	}

	return out, nil
}

// Generate generates ground truth starting at init and following segments of constant acceleration.
// Each segment starts from the last moment of the previous one.
// It returns error if step or any segment duration is not positive.
func Generate(step float64, init RobotMoment, segments []Segment) ([]RobotMoment, error) {
	if step <= 0 {
		return nil, fmt.Errorf("invalid time step: %v", step)
	}

	var moments []RobotMoment

	last := init
	for i, s := range segments {
		if s.Duration <= 0 {
			return nil, fmt.Errorf("invalid segment %d duration: %v", i, s.Duration)
		}

		seg, err := Zip(
			Move(step, last.Time, last.X.Value, last.X.Velocity, s.X, s.Duration),
			Move(step, last.Time, last.Y.Value, last.Y.Velocity, s.Y, s.Duration),
			Move(step, last.Time, last.H.Value, last.H.Velocity, s.H, s.Duration),
		)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}

		if len(seg) == 0 {
			continue
		}

		moments = append(moments, seg...)
		last = seg[len(seg)-1]
	}

	return moments, nil
}

// backAndForth moves with initial velocities vx, vy and vh for 4 seconds,
// decelerates for 2 seconds and then coasts at the reversed velocity for 4 seconds.
func backAndForth(vx, vy, vh float64) []RobotMoment {
	init := RobotMoment{
		X: Moment{Velocity: vx},
		Y: Moment{Velocity: vy},
		H: Moment{Velocity: vh},
	}

	moments, err := Generate(TimeStep, init, []Segment{
		{Duration: 4},
		{Duration: 2, X: -vx, Y: -vy, H: -vh},
		{Duration: 4},
	})
	if err != nil {
		// the segments above are valid
		panic(err)
	}

	return moments
}

// XBackAndForth moves along x axis at 1 m/s, turns around and returns at -1 m/s.
func XBackAndForth() []RobotMoment { return backAndForth(1, 0, 0) }

// YBackAndForth moves along y axis at 1 m/s, turns around and returns at -1 m/s.
func YBackAndForth() []RobotMoment { return backAndForth(0, 1, 0) }

// HBackAndForth spins at pi/2 rad/s, then reverses the spin.
func HBackAndForth() []RobotMoment { return backAndForth(0, 0, math.Pi/2) }

// AllBackAndForth combines XBackAndForth, YBackAndForth and HBackAndForth.
func AllBackAndForth() []RobotMoment { return backAndForth(1, 1, math.Pi/2) }

// Scenarios maps scenario names to the ground truth generators.
var Scenarios = map[string]func() []RobotMoment{
	"x-back-forth":   XBackAndForth,
	"y-back-forth":   YBackAndForth,
	"h-back-forth":   HBackAndForth,
	"all-back-forth": AllBackAndForth,
}

// Scenario returns ground truth of the named scenario.
// It returns error if there is no such scenario.
func Scenario(name string) ([]RobotMoment, error) {
	gen, ok := Scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %q", name)
	}

	return gen(), nil
}

// Closest returns the moment whose time is closest to t.
// moments must be sorted by time. It returns false if moments is empty.
func Closest(t float64, moments []Moment) (Moment, bool) {
	if len(moments) == 0 {
		return Moment{}, false
	}

	i := sort.Search(len(moments), func(i int) bool { return moments[i].Time >= t })
	switch {
	case i == 0:
		return moments[0], true
	case i == len(moments):
		return moments[len(moments)-1], true
	}

	if t-moments[i-1].Time <= moments[i].Time-t {
		return moments[i-1], true
	}

	return moments[i], true
}
