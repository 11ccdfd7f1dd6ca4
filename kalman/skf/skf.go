package skf

import (
	"fmt"
	"math"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/milosgajdos/go-kalman/estimate"
)

// KF is a univariate (scalar) Kalman Filter.
// It tracks a single quantity whose belief is a Gaussian given by its mean and variance.
type KF struct {
	// mean is the estimated value
	mean float64
	// variance is the estimate variance
	variance float64
	// gain is the Kalman gain of the last update
	gain float64
}

// New creates new KF with zero mean and unit variance and returns it.
func New() *KF {
	return &KF{
		mean:     0.0,
		variance: 1.0,
	}
}

// NewWithEstimate creates new KF initialized to the given mean and variance.
// It returns error if mean is not finite or variance is negative or not finite.
func NewWithEstimate(mean, variance float64) (*KF, error) {
	if err := checkGaussian("initial", mean, variance); err != nil {
		return nil, err
	}

	return &KF{
		mean:     mean,
		variance: variance,
	}, nil
}

// Predict moves the estimate by an independent Gaussian movement with the given mean and variance:
// the means and the variances add up.
// It returns error if mean is not finite, variance is negative or not finite,
// or if the predicted estimate overflows. The estimate is not modified on error.
func (k *KF) Predict(mean, variance float64) error {
	if err := checkGaussian("movement", mean, variance); err != nil {
		return err
	}

	m, v := k.mean+mean, k.variance+variance
	if !finite(m, v) {
		return fmt.Errorf("%w: non-finite prediction", filter.ErrDegenerateNoise)
	}

	k.mean, k.variance = m, v

	return nil
}

// Update fuses a measurement of the tracked quantity with the given mean and variance into the estimate.
// It returns error if mean is not finite or if variance is not strictly positive and finite.
func (k *KF) Update(mean, variance float64) error {
	if err := checkGaussian("measurement", mean, variance); err != nil {
		return err
	}

	if variance == 0 {
		return fmt.Errorf("%w: zero measurement variance", filter.ErrDegenerateNoise)
	}

	gain := k.variance / (k.variance + variance)
	m := k.mean + gain*(mean-k.mean)
	v := k.variance * (1 - gain)
	if !finite(gain, m, v) {
		return fmt.Errorf("%w: non-finite correction", filter.ErrDegenerateNoise)
	}

	k.mean, k.variance, k.gain = m, v, gain

	return nil
}

// Mean returns estimated mean
func (k *KF) Mean() float64 {
	return k.mean
}

// Variance returns estimate variance
func (k *KF) Variance() float64 {
	return k.variance
}

// Gain returns Kalman gain of the last update.
// It returns 0 if no update has been done.
func (k *KF) Gain() float64 {
	return k.gain
}

// Estimate returns current estimate
func (k *KF) Estimate() *estimate.Scalar {
	return estimate.NewScalar(k.mean, k.variance)
}

func checkGaussian(name string, mean, variance float64) error {
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return fmt.Errorf("%w: invalid %s mean: %v", filter.ErrDegenerateNoise, name, mean)
	}

	if math.IsNaN(variance) || math.IsInf(variance, 0) || variance < 0 {
		return fmt.Errorf("%w: invalid %s variance: %v", filter.ErrDegenerateNoise, name, variance)
	}

	return nil
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
