package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/integrators"
)

// Ensemble runs the same initial conditions under several methods at once.
// Every run gets its own simulator built from a fresh copy of the bodies.
type Ensemble struct {
	initial []dynamo.Body
	dt      float64
	methods []integrators.Method
	metrics func() []Metric
}

func NewEnsemble(initial []dynamo.Body, dt float64, methods ...integrators.Method) *Ensemble {
	return &Ensemble{
		initial: dynamo.CloneBodies(initial),
		dt:      dt,
		methods: methods,
	}
}

// WithMetrics sets a factory producing a fresh metric set for each run.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.metrics = fn
	return e
}

// Run returns one result per method, in the order the methods were given.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.methods))

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range e.methods {
		g.Go(func() error {
			s, err := New(e.initial, e.dt)
			if err != nil {
				return err
			}
			if e.metrics != nil {
				for _, mt := range e.metrics() {
					s.AddMetric(mt)
				}
			}

			results[i], err = s.Run(gctx, m, cfg)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
