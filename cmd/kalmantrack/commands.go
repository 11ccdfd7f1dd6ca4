package main

import (
	"fmt"

	"github.com/milosgajdos/go-kalman/kalman/kf"
	"github.com/milosgajdos/go-kalman/kalman/skf"
	"github.com/milosgajdos/go-kalman/model"
	"github.com/milosgajdos/go-kalman/sim"
	"github.com/milosgajdos/go-kalman/track"
	"github.com/spf13/cobra"
)

func doGenerate(cmd *cobra.Command, args []string) error {
	scenario, err := cmd.Flags().GetString("scenario")
	if err != nil {
		return err
	}
	path, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	if path == "" {
		path = sim.Path(".", scenario)
	}

	moments, err := sim.Scenario(scenario)
	if err != nil {
		return err
	}

	if err := sim.Save(path, moments); err != nil {
		return err
	}

	fmt.Fprintf(out(cmd), "Generated %d moments of %s to %s\n", len(moments), scenario, path)
	return nil
}

func doRun(cmd *cobra.Command, args []string) error {
	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	plotPath, err := cmd.Flags().GetString("plot")
	if err != nil {
		return err
	}
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	truth, err := cfg.truth()
	if err != nil {
		return err
	}

	syn, err := sim.NewSynthesizer(cfg.Seed, cfg.Measurement.Variance)
	if err != nil {
		return err
	}

	var meas []sim.Measurement
	if cfg.Measurement.Regular {
		meas = syn.Regular(truth)
	} else if meas, err = syn.Irregular(truth, cfg.Measurement.Rates); err != nil {
		return err
	}

	m, err := model.NewKinematic(cfg.Order, cfg.Process.Variance, cfg.Measurement.Variance)
	if err != nil {
		return err
	}

	f, err := kf.NewWithInitCond(sim.MomentInitCond(truth[0], m.Dim(), cfg.InitVariance))
	if err != nil {
		return err
	}

	if err := cmd.Context().Err(); err != nil {
		return err
	}

	report, err := track.Run(f, m, meas, truth, track.Config{
		Warmup:    cfg.Warmup,
		Threshold: cfg.Threshold,
		Logger:    log.With("axis", cfg.Axis, "order", cfg.Order),
	})
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s %s (order %d)", cfg.scenarioName(), cfg.Axis, cfg.Order)
	renderReport(out(cmd), title, report)

	if plotPath != "" {
		p, err := report.Plot(title, meas)
		if err != nil {
			return err
		}
		if err := sim.SavePlot(p, plotPath); err != nil {
			return err
		}
		log.Info("plot saved", "path", plotPath)
	}

	if !report.Converged() {
		return fmt.Errorf("%s: tracking error exceeded %v", title, cfg.Threshold)
	}

	return nil
}

func doScalar(cmd *cobra.Command, args []string) error {
	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	truth, err := cfg.truth()
	if err != nil {
		return err
	}

	syn, err := sim.NewSynthesizer(cfg.Seed, cfg.Measurement.Variance)
	if err != nil {
		return err
	}

	steps, err := track.ScalarSteps(truth, syn, cfg.Process.MoveVariance, cfg.Measurement.Variance)
	if err != nil {
		return err
	}

	f, err := skf.NewWithEstimate(truth[0].Value, cfg.InitVariance)
	if err != nil {
		return err
	}

	values := make([]float64, len(truth))
	for i, m := range truth {
		values[i] = m.Value
	}

	report, err := track.RunScalar(f, steps, values, track.Config{
		Warmup:    cfg.Warmup / sim.TimeStep,
		Threshold: cfg.Threshold,
		Logger:    log.With("axis", cfg.Axis, "filter", "univariate"),
	})
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s %s (univariate)", cfg.scenarioName(), cfg.Axis)
	renderReport(out(cmd), title, report)

	if !report.Converged() {
		return fmt.Errorf("%s: tracking error exceeded %v", title, cfg.Threshold)
	}

	return nil
}
