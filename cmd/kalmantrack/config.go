package main

import (
	"fmt"
	"os"

	"github.com/milosgajdos/go-kalman/sim"
	"gopkg.in/yaml.v3"
)

// Config is a tracking scenario.
type Config struct {
	// Scenario names a generated ground truth, see sim.Scenarios
	Scenario string `yaml:"scenario"`
	// Truth is a path to a stored ground truth; it takes precedence over Scenario
	Truth string `yaml:"truth,omitempty"`
	// Axis is the tracked axis: x, y or h
	Axis string `yaml:"axis"`
	// Seed seeds the measurement noise; 0 seeds from the clock
	Seed uint64 `yaml:"seed"`
	// Order is the kinematic model order: 1 for constant velocity, 2 for constant acceleration
	Order int `yaml:"order"`
	// InitVariance is the variance of the initial estimate
	InitVariance float64 `yaml:"init_variance"`
	// Warmup is the time in seconds excluded from error statistics
	Warmup float64 `yaml:"warmup"`
	// Threshold is the tolerated absolute position error
	Threshold float64 `yaml:"threshold"`

	Measurement MeasurementConfig `yaml:"measurement"`
	Process     ProcessConfig     `yaml:"process"`
}

// MeasurementConfig configures synthesized measurements.
type MeasurementConfig struct {
	Variance float64   `yaml:"variance"`
	Regular  bool      `yaml:"regular"`
	Rates    sim.Rates `yaml:"rates"`
}

// ProcessConfig configures the process noise.
type ProcessConfig struct {
	// Variance of the highest modelled derivative
	Variance float64 `yaml:"variance"`
	// MoveVariance is the variance of displacements fed to the univariate filter
	MoveVariance float64 `yaml:"move_variance"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Scenario:     "x-back-forth",
		Axis:         "x",
		Seed:         1,
		Order:        2,
		InitVariance: 1.0,
		Warmup:       0.5,
		Threshold:    0.25,
		Measurement: MeasurementConfig{
			Variance: 0.01,
			Rates:    sim.DefaultRates,
		},
		Process: ProcessConfig{
			Variance:     0.1,
			MoveVariance: 0.0001,
		},
	}
}

// LoadConfig reads configuration from the YAML file at path on top of DefaultConfig.
// Empty path returns DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate returns error if cfg can not be run.
func (c Config) Validate() error {
	if c.Truth == "" {
		if _, ok := sim.Scenarios[c.Scenario]; !ok {
			return fmt.Errorf("unknown scenario: %q", c.Scenario)
		}
	}

	if _, err := parseAxis(c.Axis); err != nil {
		return err
	}

	if c.Order != 1 && c.Order != 2 {
		return fmt.Errorf("unsupported model order: %d", c.Order)
	}

	if c.InitVariance <= 0 {
		return fmt.Errorf("invalid init_variance: %v", c.InitVariance)
	}

	if c.Warmup < 0 {
		return fmt.Errorf("invalid warmup: %v", c.Warmup)
	}

	if c.Threshold <= 0 {
		return fmt.Errorf("invalid threshold: %v", c.Threshold)
	}

	if c.Measurement.Variance <= 0 {
		return fmt.Errorf("invalid measurement variance: %v", c.Measurement.Variance)
	}

	if err := c.Measurement.Rates.Validate(); err != nil {
		return err
	}

	if c.Process.Variance < 0 || c.Process.MoveVariance < 0 {
		return fmt.Errorf("invalid process variance: %v, %v", c.Process.Variance, c.Process.MoveVariance)
	}

	return nil
}

// truth returns the ground truth of the configured axis.
func (c Config) truth() ([]sim.Moment, error) {
	axis, err := parseAxis(c.Axis)
	if err != nil {
		return nil, err
	}

	var moments []sim.RobotMoment
	if c.Truth != "" {
		moments, err = sim.Load(c.Truth)
	} else {
		moments, err = sim.Scenario(c.Scenario)
	}
	if err != nil {
		return nil, err
	}

	if len(moments) == 0 {
		return nil, fmt.Errorf("empty ground truth")
	}

	return axis.Project(moments), nil
}

func parseAxis(s string) (sim.Axis, error) {
	for _, a := range []sim.Axis{sim.AxisX, sim.AxisY, sim.AxisH} {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown axis: %q", s)
}

func (c Config) scenarioName() string {
	if c.Truth != "" {
		return c.Truth
	}
	return c.Scenario
}
