package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/viz"
)

var (
	dataDir       string
	dt            float64
	duration      float64
	integrator    string
	recordEvery   int
	noValidate    bool
	configFile    string
	preset        string
	stepsPerFrame int
	liveDt        float64
	liveDuration  float64
	outPath       string
	bodyIndex     int
	axisName      string
	lyapunov      bool
	sweepDts      []float64
	tuneDts       []float64
	tolerance     float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nbodysim",
		Short: "gravitational n-body simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(liveDt, stepsPerFrame)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nbodysim", "data directory")
	rootCmd.Flags().Float64Var(&liveDt, "dt", 0.001, "timestep")
	rootCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 10, "integration steps per rendered frame")

	runCmd := &cobra.Command{
		Use:   "run [fixture]",
		Short: "run a simulation and store its trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0.0001, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	runCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (leapfrog, rk2, rk4)")
	runCmd.Flags().IntVar(&recordEvery, "record-every", 100, "record one frame every N steps (0 = endpoints only)")
	runCmd.Flags().BoolVar(&noValidate, "no-validate", false, "do not stop on non-finite state")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	fixturesCmd := &cobra.Command{
		Use:   "fixtures",
		Short: "list built-in initial conditions",
		Args:  cobra.NoArgs,
		RunE:  listFixtures,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [fixture]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy error and coordinates of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index")
	analyzeCmd.Flags().StringVar(&axisName, "axis", "x", "coordinate axis (x, y, z)")
	analyzeCmd.Flags().BoolVar(&lyapunov, "lyapunov", false, "also estimate the largest Lyapunov exponent")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export trajectory as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export orbits as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.svg)")

	compareCmd := &cobra.Command{
		Use:   "compare [fixture] [integrators...]",
		Short: "run several integrators on the same fixture",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0.0001, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")

	liveCmd := &cobra.Command{
		Use:   "live [fixture]",
		Short: "run simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&liveDt, "dt", 0.001, "timestep")
	liveCmd.Flags().Float64Var(&liveDuration, "time", 0, "stop after this much simulated time (0 = run until quit)")
	liveCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 10, "integration steps per rendered frame")

	benchCmd := &cobra.Command{
		Use:   "bench [fixture]",
		Short: "benchmark integrators",
		Args:  cobra.ExactArgs(1),
		RunE:  benchFixture,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [fixture]",
		Short: "measure energy error convergence over timesteps",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	sweepCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	sweepCmd.Flags().Float64SliceVar(&sweepDts, "dts", []float64{0.004, 0.002, 0.001, 0.0005}, "timesteps")

	tuneCmd := &cobra.Command{
		Use:   "tune [fixture]",
		Short: "find the cheapest integrator and timestep within an energy tolerance",
		Args:  cobra.ExactArgs(1),
		RunE:  runTune,
	}
	tuneCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	tuneCmd.Flags().Float64Var(&tolerance, "tolerance", 1e-6, "maximum relative energy drift")
	tuneCmd.Flags().Float64SliceVar(&tuneDts, "dts", []float64{0.01, 0.005, 0.001, 0.0005, 0.0001}, "candidate timesteps")

	rootCmd.AddCommand(runCmd, fixturesCmd, presetsCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, compareCmd, liveCmd, benchCmd,
		batchCmd, sweepCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
