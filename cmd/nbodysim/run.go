package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/experiment"
	"github.com/san-kum/nbodysim/internal/fixtures"
	"github.com/san-kum/nbodysim/internal/integrators"
	"github.com/san-kum/nbodysim/internal/sim"
	"github.com/san-kum/nbodysim/internal/storage"
	"github.com/san-kum/nbodysim/internal/viz"
)

// resolveConfig layers preset, config file, positional fixture and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	fixture := cfg.Fixture
	if len(args) > 0 {
		fixture = args[0]
	}

	if preset != "" {
		p := config.GetPreset(fixture, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(fixture))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Fixture = args[0]
		cfg.Bodies = nil
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("record-every") {
		cfg.RecordEvery = recordEvery
	}
	if flags.Changed("no-validate") {
		cfg.ValidateState = !noValidate
	}

	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ec, err := experiment.FromConfig(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(ec)
	if err := exp.Setup(experiment.DefaultMetrics()...); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s with %s (dt=%g, duration=%g)...\n", ec.Name, ec.Method, ec.Dt, ec.Duration)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		fmt.Printf("stopped early: %v\n", err)
	}

	elapsed := time.Since(start)

	runID, saveErr := st.Save(ec.Name, ec.Dt, ec.Duration, result)
	if saveErr != nil {
		return saveErr
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d (t=%.6f)\n", result.StepsTaken, result.FinalTime)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Printf("baseline energy: %.12f\n", result.BaselineEnergy)
	fmt.Printf("relative energy error: %+.3e\n", result.EnergyError)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return err
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6e\n", name, metrics[name])
	}
}

func listFixtures(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tBODIES\tYEAR\tPERIOD\tENERGY")
	for _, f := range fixtures.List() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.6f\t%.10f\n",
			f.Key, f.Name, f.NumBodies(), f.Year, f.Period, f.Energy)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	keys := fixtures.Keys()
	if len(args) > 0 {
		keys = args
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIXTURE\tPRESET\tINTEG\tDT\tDURATION")
	for _, key := range keys {
		names := config.ListPresets(key)
		sort.Strings(names)
		for _, name := range names {
			p := config.GetPreset(key, name)
			fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\n", key, name, p.Integrator, p.Dt, p.Duration)
		}
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	f, err := fixtures.Get(args[0])
	if err != nil {
		return err
	}

	methods := integrators.Methods()
	if len(args) > 1 {
		methods = make([]integrators.Method, 0, len(args)-1)
		for _, name := range args[1:] {
			m, err := integrators.ParseMethod(name)
			if err != nil {
				return err
			}
			methods = append(methods, m)
		}
	}

	ens := sim.NewEnsemble(f.Bodies(), dt, methods...).WithMetrics(experiment.DefaultMetrics)

	fmt.Printf("comparing integrators for %s (dt=%g, duration=%g)\n\n", f.Key, dt, duration)

	start := time.Now()
	results, err := ens.Run(context.Background(), sim.Config{Duration: duration})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tSTEPS\tREL_ERROR\tENERGY_DRIFT\tMOMENTUM_DRIFT\tMIN_SEP")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%+.3e\t%.3e\t%.3e\t%.4f\n",
			r.Method, r.StepsTaken, r.EnergyError,
			r.Metrics["energy_drift"], r.Metrics["momentum_drift"], r.Metrics["min_separation"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nwall time: %v\n", elapsed)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	f, err := fixtures.Get(args[0])
	if err != nil {
		return err
	}
	m, err := integrators.ParseMethod(integrator)
	if err != nil {
		return err
	}

	model, err := viz.NewModel(f.Name, f.Bodies(), m, liveDt, stepsPerFrame, liveDuration)
	if err != nil {
		return err
	}
	return viz.Run(model)
}

func benchFixture(cmd *cobra.Command, args []string) error {
	f, err := fixtures.Get(args[0])
	if err != nil {
		return err
	}

	const benchDuration = 1.0
	dts := []float64{0.01, 0.001, 0.0001}

	fmt.Printf("benchmarking %s (%d bodies, duration=%g)\n\n", f.Key, f.NumBodies(), benchDuration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tDT\tSTEPS\tTIME\tSTEPS/SEC\tREL_ERROR")

	for _, m := range integrators.Methods() {
		for _, step := range dts {
			s, err := sim.New(f.Bodies(), step)
			if err != nil {
				return err
			}

			start := time.Now()
			if err := s.Evolve(m, benchDuration); err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(s.Steps()) / elapsed.Seconds()
			fmt.Fprintf(w, "%s\t%g\t%d\t%v\t%.0f\t%+.3e\n",
				m, step, s.Steps(), elapsed, stepsPerSec, s.RelativeEnergyError())
		}
	}

	return w.Flush()
}
