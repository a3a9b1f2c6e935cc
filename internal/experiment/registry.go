package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/nbodysim/internal/metrics"
	"github.com/san-kum/nbodysim/internal/sim"
)

var metricFactories = map[string]func() sim.Metric{
	"energy_drift":           func() sim.Metric { return metrics.NewEnergyDrift() },
	"momentum_drift":         func() sim.Metric { return metrics.NewMomentumDrift() },
	"angular_momentum_drift": func() sim.Metric { return metrics.NewAngularMomentumDrift() },
	"min_separation":         func() sim.Metric { return metrics.NewMinSeparation() },
}

func NewMetric(name string) (sim.Metric, error) {
	fn, ok := metricFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func MetricNames() []string {
	names := make([]string, 0, len(metricFactories))
	for name := range metricFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh instance of every known metric.
func DefaultMetrics() []sim.Metric {
	names := MetricNames()
	out := make([]sim.Metric, len(names))
	for i, name := range names {
		out[i] = metricFactories[name]()
	}
	return out
}
