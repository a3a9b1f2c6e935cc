package optim

import (
	"context"
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/experiment"
	"github.com/san-kum/nbodysim/internal/integrators"
	"github.com/san-kum/nbodysim/internal/metrics"
	"github.com/san-kum/nbodysim/internal/sim"
)

// Choice is the cheapest integrator setup found by CheapestSetup.
type Choice struct {
	Method integrators.Method
	Dt     float64
	Steps  int
	Drift  float64
}

// CheapestSetup searches methods x dts for the setup with the fewest force
// evaluations whose maximum relative energy drift over duration stays within
// tolerance.
func CheapestSetup(ctx context.Context, bodies []dynamo.Body, methods []integrators.Method, dts []float64, duration, tolerance float64) (Choice, error) {
	indices := make([]float64, len(methods))
	for i := range methods {
		indices[i] = float64(i)
	}

	drifts := make(map[[2]float64]float64)
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		exp := experiment.New(experiment.Config{
			Name:     "search",
			Method:   methods[int(params["method"])],
			Bodies:   bodies,
			Dt:       params["dt"],
			Duration: duration,
		})
		return exp, exp.Setup(metrics.NewEnergyDrift())
	}

	objective := func(r *sim.Result) float64 {
		drift := r.Metrics["energy_drift"]
		drifts[[2]float64{float64(r.Method), float64(r.StepsTaken)}] = drift
		if drift > tolerance || math.IsNaN(drift) {
			return math.Inf(1)
		}
		return float64(r.StepsTaken * stages(r.Method))
	}

	grid := NewGridSearch([]string{"method", "dt"}, [][]float64{indices, dts})
	params, cost, err := grid.Search(ctx, build, objective)
	if err != nil {
		return Choice{}, err
	}

	m := methods[int(params["method"])]
	steps := int(cost) / stages(m)
	return Choice{
		Method: m,
		Dt:     params["dt"],
		Steps:  steps,
		Drift:  drifts[[2]float64{float64(m), float64(steps)}],
	}, nil
}

// stages is the number of acceleration evaluations per step.
func stages(m integrators.Method) int {
	switch m {
	case integrators.Leapfrog, integrators.RK2:
		return 2
	case integrators.RK4:
		return 3
	}
	return 1
}
