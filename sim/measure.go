package sim

import (
	"fmt"
	"sort"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/milosgajdos/go-kalman/noise"
	"github.com/milosgajdos/go-kalman/rand"
	"gonum.org/v1/gonum/mat"
)

// Measurement is a noisy observation of a single axis.
// Nil fields were not observed.
type Measurement struct {
	Time         float64  `json:"time"`
	Position     *float64 `json:"position,omitempty"`
	Velocity     *float64 `json:"velocity,omitempty"`
	Acceleration *float64 `json:"acceleration,omitempty"`
}

// Empty returns true if m does not observe anything.
func (m Measurement) Empty() bool {
	return m.Position == nil && m.Velocity == nil && m.Acceleration == nil
}

// Rates are per-sensor probabilities of taking a reading in a ground truth interval.
type Rates struct {
	Position     float64 `yaml:"position"`
	Velocity     float64 `yaml:"velocity"`
	Acceleration float64 `yaml:"acceleration"`
}

// DefaultRates model an infrequent position sensor, e.g. a camera,
// and frequent velocity and acceleration sensors.
var DefaultRates = Rates{
	Position:     0.1,
	Velocity:     0.9,
	Acceleration: 0.75,
}

// Validate returns error if any of the rates is not a probability.
func (r Rates) Validate() error {
	for name, p := range map[string]float64{
		"position":     r.Position,
		"velocity":     r.Velocity,
		"acceleration": r.Acceleration,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("invalid %s rate: %v", name, p)
		}
	}
	return nil
}

// Synthesizer perturbs ground truth with Gaussian noise.
type Synthesizer struct {
	src      *rand.Source
	variance float64
	// moment perturbs [value, velocity, acceleration] of a moment
	moment filter.Noise
}

// NewSynthesizer creates new Synthesizer drawing noise with the given variance
// from a source seeded with seed and returns it.
// It returns error if variance is negative.
func NewSynthesizer(seed uint64, variance float64) (*Synthesizer, error) {
	if variance < 0 {
		return nil, fmt.Errorf("invalid measurement variance: %v", variance)
	}

	src := rand.NewSource(seed)

	var n filter.Noise
	var err error
	if variance == 0 {
		n, err = noise.NewZero(3)
	} else {
		cov := mat.NewSymDense(3, []float64{
			variance, 0, 0,
			0, variance, 0,
			0, 0, variance,
		})
		// measurement noise must not replay the draws of src
		n, err = noise.NewGaussianWithSeed(make([]float64, 3), cov, src.Uint64())
	}
	if err != nil {
		return nil, err
	}

	return &Synthesizer{
		src:      src,
		variance: variance,
		moment:   n,
	}, nil
}

func (s *Synthesizer) noisy(v float64) *float64 {
	n := s.src.Normal(v, s.variance)
	return &n
}

// Regular returns a measurement of every field of every moment.
func (s *Synthesizer) Regular(truth []Moment) []Measurement {
	out := make([]Measurement, len(truth))
	for i, m := range truth {
		n := s.moment.Sample()
		pos, vel, acc := m.Value+n.AtVec(0), m.Velocity+n.AtVec(1), m.Acceleration+n.AtVec(2)
		out[i] = Measurement{
			Time:         m.Time,
			Position:     &pos,
			Velocity:     &vel,
			Acceleration: &acc,
		}
	}

	return out
}

// Irregular returns measurements taken at irregular times.
// The first moment is observed exactly. For every following ground truth interval
// each sensor takes a reading with the probability given by r, at a uniformly
// random time inside the interval. The returned measurements are sorted by time.
// It returns error if r are not valid probabilities.
func (s *Synthesizer) Irregular(truth []Moment, r Rates) ([]Measurement, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if len(truth) == 0 {
		return nil, nil
	}

	first := truth[0]
	out := []Measurement{{
		Time:         first.Time,
		Position:     &first.Value,
		Velocity:     &first.Velocity,
		Acceleration: &first.Acceleration,
	}}

	for i := 1; i < len(truth); i++ {
		last := truth[i-1].Time
		cur := truth[i]

		if s.src.Bernoulli(r.Position) {
			out = append(out, Measurement{Time: s.src.Uniform(last, cur.Time), Position: s.noisy(cur.Value)})
		}

		if s.src.Bernoulli(r.Velocity) {
			out = append(out, Measurement{Time: s.src.Uniform(last, cur.Time), Velocity: s.noisy(cur.Velocity)})
		}

		if s.src.Bernoulli(r.Acceleration) {
			out = append(out, Measurement{Time: s.src.Uniform(last, cur.Time), Acceleration: s.noisy(cur.Acceleration)})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })

	return out, nil
}

// Displacements returns noisy displacements between consecutive moments.
// The displacement of the first moment is zero plus noise with the given variance.
// It returns error if variance is negative.
func (s *Synthesizer) Displacements(truth []Moment, variance float64) ([]float64, error) {
	if variance < 0 {
		return nil, fmt.Errorf("invalid displacement variance: %v", variance)
	}

	if len(truth) == 0 {
		return nil, nil
	}

	cov := mat.NewSymDense(1, []float64{variance})
	n, err := s.src.WithCovN(cov, len(truth))
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(truth))
	for i := range truth {
		d := 0.0
		if i > 0 {
			d = truth[i].Value - truth[i-1].Value
		}
		out[i] = d + n.At(0, i)
	}

	return out, nil
}
