package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/analysis"
	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/export"
	"github.com/san-kum/nbodysim/internal/fixtures"
	"github.com/san-kum/nbodysim/internal/integrators"
	"github.com/san-kum/nbodysim/internal/sim"
	"github.com/san-kum/nbodysim/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDURATION\tDT\tINTEG\tBODIES\tREL_ERROR")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%s\t%d\t%+.2e\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.NumBodies,
			run.EnergyError,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("ensemble: %s (%d bodies, %s)\n", meta.Name, meta.NumBodies, meta.Integrator)
	fmt.Printf("frames: %d\n\n", len(frames))

	if len(frames) < 2 {
		return fmt.Errorf("need at least two frames to plot")
	}

	relErr := make([]float64, len(frames))
	for i, f := range frames {
		relErr[i] = dynamo.RelativeEnergyError(f.Energy, meta.BaselineEnergy)
	}
	fmt.Println(asciigraph.Plot(relErr,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("relative energy error"),
	))
	fmt.Println()

	for body := 0; body < meta.NumBodies && body < 3; body++ {
		xs, err := analysis.Coordinate(frames, body, analysis.AxisX)
		if err != nil {
			return err
		}
		ys, err := analysis.Coordinate(frames, body, analysis.AxisY)
		if err != nil {
			return err
		}
		fmt.Println(asciigraph.PlotMany([][]float64{xs, ys},
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
			asciigraph.Caption(fmt.Sprintf("body %d: x (red), y (blue)", body)),
		))
		fmt.Println()
	}

	return nil
}

func parseAxis(name string) (analysis.Axis, error) {
	switch strings.ToLower(name) {
	case "x":
		return analysis.AxisX, nil
	case "y":
		return analysis.AxisY, nil
	case "z":
		return analysis.AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis: %s", name)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	axis, err := parseAxis(axisName)
	if err != nil {
		return err
	}

	samples := analysis.UniformFrames(frames)

	series, err := analysis.Coordinate(samples, bodyIndex, axis)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("ensemble: %s, body %d, axis %s\n\n", meta.Name, bodyIndex, axisName)

	ps := analysis.PowerSpectrum(series)
	if len(ps) > 8 {
		fmt.Println(asciigraph.Plot(ps[:len(ps)/4],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (body %d %s)", bodyIndex, axisName)),
		))
		fmt.Println()
	}

	period, err := analysis.EstimatePeriod(series, analysis.SampleInterval(samples))
	if err != nil {
		return err
	}
	fmt.Printf("dominant period: %.4f\n", period)
	if f, err := fixtures.Get(meta.Name); err == nil && f.Period > 0 {
		fmt.Printf("reference period: %.4f (%+.2f%%)\n", f.Period, 100*(period-f.Period)/f.Period)
	}

	if lyapunov {
		m, err := integrators.ParseMethod(meta.Integrator)
		if err != nil {
			return err
		}
		lambda, err := analysis.LyapunovExponent(frames[0].Bodies, m, meta.Dt, meta.Duration, 1e-8, 100)
		if err != nil {
			return err
		}
		fmt.Printf("largest lyapunov exponent: %.4f\n", lambda)
		if lambda > 0.1 && !math.IsInf(lambda, 0) {
			fmt.Println("trajectory is sensitive to initial conditions")
		}
	}

	return nil
}

// output opens outPath for writing, or stdout when it is empty.
func output() (io.WriteCloser, error) {
	if outPath == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outPath)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportCSV(cmd *cobra.Command, args []string) error {
	_, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	return storage.WriteCSV(w, frames)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	return storage.WriteJSON(w, *meta, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	svg := export.OrbitsSVG(frames, 800, 800)
	if svg == "" {
		return fmt.Errorf("run %s has too few frames for an orbit plot", meta.ID)
	}

	path := outPath
	if path == "" {
		path = meta.ID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
