package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/nbodysim/internal/experiment"
	"github.com/san-kum/nbodysim/internal/fixtures"
	"github.com/san-kum/nbodysim/internal/integrators"
	"github.com/san-kum/nbodysim/internal/sim"
)

func TestCheapestSetup(t *testing.T) {
	tests := []struct {
		name      string
		tolerance float64
		method    integrators.Method
		dt        float64
		steps     int
	}{
		{"loose", 1e-3, integrators.RK4, 0.01, 200},
		{"tight", 1e-5, integrators.RK4, 0.001, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			choice, err := CheapestSetup(context.Background(),
				fixtures.MustGet("two-body").Bodies(),
				integrators.Methods(),
				[]float64{0.01, 0.001},
				2.0, tt.tolerance)
			if err != nil {
				t.Fatal(err)
			}
			if choice.Method != tt.method || choice.Dt != tt.dt || choice.Steps != tt.steps {
				t.Errorf("got %+v, want %v dt=%v steps=%d", choice, tt.method, tt.dt, tt.steps)
			}
			if choice.Drift > tt.tolerance || choice.Drift == 0 {
				t.Errorf("unexpected drift %v", choice.Drift)
			}
		})
	}
}

func TestCheapestSetup_NoCandidate(t *testing.T) {
	_, err := CheapestSetup(context.Background(),
		fixtures.MustGet("two-body").Bodies(),
		[]integrators.Method{integrators.Leapfrog},
		[]float64{0.01},
		2.0, 1e-10)
	if !errors.Is(err, ErrNoCandidate) {
		t.Errorf("expected ErrNoCandidate, got %v", err)
	}
}

func TestGridSearch_SkipsFailedBuilds(t *testing.T) {
	g := NewGridSearch([]string{"dt"}, [][]float64{{-1, 0.01}})
	bodies := fixtures.MustGet("figure-eight").Bodies()

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		exp := experiment.New(experiment.Config{
			Name:     "figure-eight",
			Method:   integrators.RK4,
			Bodies:   bodies,
			Dt:       params["dt"],
			Duration: 0.1,
		})
		return exp, exp.Setup()
	}

	params, _, err := g.Search(context.Background(), build, func(*sim.Result) float64 { return 1 })
	if err != nil {
		t.Fatal(err)
	}
	if params["dt"] != 0.01 {
		t.Errorf("expected dt 0.01, got %v", params["dt"])
	}
}

func TestGridSearch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch([]string{"dt"}, [][]float64{{0.01}})
	_, _, err := g.Search(ctx, nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
