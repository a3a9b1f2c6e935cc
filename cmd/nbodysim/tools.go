package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/automation"
	"github.com/san-kum/nbodysim/internal/fixtures"
	"github.com/san-kum/nbodysim/internal/integrators"
	"github.com/san-kum/nbodysim/internal/optim"
	"github.com/san-kum/nbodysim/internal/storage"
)

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}
	fmt.Println()

	outcomes, err := automation.RunScenario(context.Background(), scenario, st, os.Stdout)

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tINTEG\tSTEPS\tREL_ERROR\tRUN_ID")
	for i, o := range outcomes {
		runID := o.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%+.3e\t%s\n",
			i+1, o.Label, o.Result.Method, o.Result.StepsTaken, o.Result.EnergyError, runID)
	}
	if flushErr := w.Flush(); flushErr != nil {
		return flushErr
	}

	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	f, err := fixtures.Get(args[0])
	if err != nil {
		return err
	}
	m, err := integrators.ParseMethod(integrator)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(context.Background(), &automation.TimestepSweep{
		Bodies:   f.Bodies(),
		Method:   m,
		Duration: duration,
		Dts:      sweepDts,
	})
	if err != nil {
		return err
	}

	fmt.Printf("timestep sweep: %s with %s (duration=%g)\n\n", f.Key, m, duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tREL_ERROR\tORDER")
	for _, r := range results {
		order := "-"
		if !math.IsNaN(r.Order) && !math.IsInf(r.Order, 0) {
			order = fmt.Sprintf("%.2f", r.Order)
		}
		fmt.Fprintf(w, "%g\t%d\t%+.3e\t%s\n", r.Dt, r.Steps, r.EnergyError, order)
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	f, err := fixtures.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("searching %d integrators x %d timesteps for %s (tolerance=%g)...\n",
		len(integrators.Methods()), len(tuneDts), f.Key, tolerance)

	choice, err := optim.CheapestSetup(context.Background(), f.Bodies(), integrators.Methods(), tuneDts, duration, tolerance)
	if err != nil {
		return err
	}

	fmt.Printf("integrator: %s\n", choice.Method)
	fmt.Printf("dt: %g\n", choice.Dt)
	fmt.Printf("steps: %d\n", choice.Steps)
	fmt.Printf("max energy drift: %.3e\n", choice.Drift)
	return nil
}
