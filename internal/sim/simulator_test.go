package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/integrators"
)

func twoBody() []dynamo.Body {
	return []dynamo.Body{
		dynamo.NewBody(0.8, dynamo.V(0.2, 0, 0), dynamo.V(0, 0.1, 0)),
		dynamo.NewBody(0.2, dynamo.V(-0.8, 0, 0), dynamo.V(0, -0.4, 0)),
	}
}

func TestNew(t *testing.T) {
	s, err := New(twoBody(), 0.01)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.Time() != 0 || s.Steps() != 0 || s.Len() != 2 {
		t.Errorf("unexpected initial state: t=%v steps=%d n=%d", s.Time(), s.Steps(), s.Len())
	}
	if math.Abs(s.BaselineEnergy()+0.14) > 1e-15 {
		t.Errorf("baseline energy = %v, want -0.14", s.BaselineEnergy())
	}
	if s.RelativeEnergyError() != 0 {
		t.Errorf("initial relative error = %v, want 0", s.RelativeEnergyError())
	}
}

func TestNewInvalid(t *testing.T) {
	coincident := twoBody()
	coincident[1].Pos = coincident[0].Pos

	massless := twoBody()
	massless[0].Mass = 0

	atRest := []dynamo.Body{dynamo.NewBody(1, dynamo.V(1, 0, 0), dynamo.Vec3{})}

	tests := []struct {
		name   string
		bodies []dynamo.Body
		dt     float64
		want   error
	}{
		{"zero dt", twoBody(), 0, dynamo.ErrInvalidTimestep},
		{"negative dt", twoBody(), -0.1, dynamo.ErrInvalidTimestep},
		{"NaN dt", twoBody(), math.NaN(), dynamo.ErrInvalidTimestep},
		{"Inf dt", twoBody(), math.Inf(1), dynamo.ErrInvalidTimestep},
		{"zero mass", massless, 0.01, dynamo.ErrInvalidBody},
		{"coincident", coincident, 0.01, dynamo.ErrCoincidentBodies},
		{"empty", nil, 0.01, dynamo.ErrZeroEnergy},
		{"single body at rest", atRest, 0.01, dynamo.ErrZeroEnergy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.bodies, tt.dt)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewCopiesBodies(t *testing.T) {
	bodies := twoBody()
	s, err := New(bodies, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	bodies[0].Pos = dynamo.V(5, 5, 5)
	if s.Bodies()[0].Pos == bodies[0].Pos {
		t.Error("simulator shares caller's slice")
	}

	snap := s.Bodies()
	snap[1].Vel.Fill(3)
	if s.Bodies()[1].Vel == snap[1].Vel {
		t.Error("Bodies did not return a copy")
	}
}

func TestSingleMovingBody(t *testing.T) {
	s, err := New([]dynamo.Body{dynamo.NewBody(2, dynamo.Vec3{}, dynamo.V(1, 0, 0))}, 0.5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Evolve(integrators.RK4, 2.0); err != nil {
		t.Fatal(err)
	}
	if got := s.Bodies()[0].Pos; math.Abs(got.X()-2) > 1e-12 {
		t.Errorf("free body position = %v, want (2, 0, 0)", got)
	}
	if s.PotentialEnergy() != 0 || s.RelativeEnergyError() != 0 {
		t.Errorf("free body energy changed: pe=%v rel=%v", s.PotentialEnergy(), s.RelativeEnergyError())
	}
}

func TestStep(t *testing.T) {
	s, _ := New(twoBody(), 0.01)
	before := s.Bodies()

	if err := s.Step(integrators.Leapfrog); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if s.Time() != 0.01 || s.Steps() != 1 {
		t.Errorf("clock not advanced: t=%v steps=%d", s.Time(), s.Steps())
	}
	if cmp.Equal(before, s.Bodies()) {
		t.Error("bodies did not move")
	}
}

func TestStepUnsupportedMethod(t *testing.T) {
	s, _ := New(twoBody(), 0.01)
	if err := s.Step(integrators.RK4); err != nil {
		t.Fatal(err)
	}
	before := s.Bodies()
	clock := s.Time()

	for _, m := range []integrators.Method{0, integrators.Method(99)} {
		err := s.Step(m)
		if !errors.Is(err, dynamo.ErrUnsupportedIntegrator) {
			t.Errorf("Step(%v): expected ErrUnsupportedIntegrator, got %v", m, err)
		}
		if err := s.Evolve(m, 1.0); !errors.Is(err, dynamo.ErrUnsupportedIntegrator) {
			t.Errorf("Evolve(%v): expected ErrUnsupportedIntegrator, got %v", m, err)
		}
	}

	if diff := cmp.Diff(before, s.Bodies()); diff != "" {
		t.Errorf("ensemble changed after failed step (-before +after):\n%s", diff)
	}
	if s.Time() != clock || s.Steps() != 1 {
		t.Errorf("clock changed after failed step: t=%v steps=%d", s.Time(), s.Steps())
	}
}

func TestEvolveHalfStepRule(t *testing.T) {
	tests := []struct {
		duration  float64
		wantSteps int
	}{
		{1.0, 10},
		{1.04, 10},
		{1.06, 11},
		{0.04, 0},
		{0.05, 0},
		{0.06, 1},
	}

	for _, tt := range tests {
		s, _ := New(twoBody(), 0.1)
		if err := s.Evolve(integrators.RK4, tt.duration); err != nil {
			t.Fatal(err)
		}
		if s.Steps() != tt.wantSteps {
			t.Errorf("duration %v: %d steps, want %d", tt.duration, s.Steps(), tt.wantSteps)
		}
		if s.Time() < tt.duration-0.5*s.Dt() || s.Time() > tt.duration+0.5*s.Dt() {
			t.Errorf("duration %v: final time %v outside half-step window", tt.duration, s.Time())
		}
	}
}

func TestEnergyIdempotent(t *testing.T) {
	s, _ := New(twoBody(), 0.01)
	_ = s.Evolve(integrators.RK2, 0.5)

	if s.KineticEnergy() != s.KineticEnergy() || s.PotentialEnergy() != s.PotentialEnergy() {
		t.Error("energy components not idempotent")
	}
	if s.RelativeEnergyError() != s.RelativeEnergyError() {
		t.Error("relative energy error not idempotent")
	}
}

type testMetric struct {
	count int
	last  float64
}

func (m *testMetric) Name() string { return "test" }
func (m *testMetric) Observe(bodies []dynamo.Body, t float64) {
	m.count++
	m.last = t
}
func (m *testMetric) Value() float64 { return float64(m.count) }
func (m *testMetric) Reset()         { m.count, m.last = 0, 0 }

type testObserver struct{ calls int }

func (o *testObserver) OnStep(bodies []dynamo.Body, t float64) { o.calls++ }

func TestRun(t *testing.T) {
	s, _ := New(twoBody(), 0.001)
	metric := &testMetric{}
	obs := &testObserver{}
	s.AddMetric(metric)
	s.AddObserver(obs)

	result, err := s.Run(context.Background(), integrators.Leapfrog, Config{Duration: 1.0, RecordEvery: 100})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 1000 {
		t.Errorf("expected 1000 steps, got %d", result.StepsTaken)
	}
	if len(result.Frames) != 11 {
		t.Errorf("expected 11 frames, got %d", len(result.Frames))
	}
	if result.Frames[0].Step != 0 || result.Frames[0].Time != 0 {
		t.Errorf("first frame should be the initial state: %+v", result.Frames[0])
	}
	final, _ := result.Final()
	if final.Step != 1000 || final.Time != s.Time() {
		t.Errorf("last frame should be the final state: step=%d t=%v", final.Step, final.Time)
	}
	if metric.count != 1001 {
		t.Errorf("expected 1001 observations, got %d", metric.count)
	}
	if obs.calls != 1000 {
		t.Errorf("expected 1000 observer calls, got %d", obs.calls)
	}
	if result.Metrics["test"] != 1001 {
		t.Errorf("metric not reported: %v", result.Metrics)
	}
	if result.EnergyError != s.RelativeEnergyError() {
		t.Errorf("energy error %v does not match simulator %v", result.EnergyError, s.RelativeEnergyError())
	}
}

func TestRunRecordsOnlyEndpoints(t *testing.T) {
	s, _ := New(twoBody(), 0.01)
	result, err := s.Run(context.Background(), integrators.RK4, Config{Duration: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Frames) != 2 {
		t.Errorf("expected 2 frames, got %d", len(result.Frames))
	}
}

func TestRunInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero duration", Config{Duration: 0}},
		{"negative duration", Config{Duration: -1.0}},
		{"negative record interval", Config{Duration: 1.0, RecordEvery: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := New(twoBody(), 0.01)
			if _, err := s.Run(context.Background(), integrators.RK4, tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
			if s.Steps() != 0 {
				t.Error("simulator stepped despite invalid config")
			}
		})
	}
}

func TestRunCanceled(t *testing.T) {
	s, _ := New(twoBody(), 0.01)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, integrators.RK4, Config{Duration: 1.0})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.StepsTaken != 0 {
		t.Errorf("expected empty partial result, got %+v", result)
	}
}

func TestEnsemble(t *testing.T) {
	initial := twoBody()
	e := NewEnsemble(initial, 0.001, integrators.Methods()...).WithMetrics(func() []Metric {
		return []Metric{&testMetric{}}
	})

	results, err := e.Run(context.Background(), Config{Duration: 1.0})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i, m := range integrators.Methods() {
		if results[i].Method != m {
			t.Errorf("result %d: method %v, want %v", i, results[i].Method, m)
		}
		if math.Abs(results[i].EnergyError) > 1e-5 {
			t.Errorf("%v: energy error %e", m, results[i].EnergyError)
		}
		if results[i].Metrics["test"] != 1001 {
			t.Errorf("%v: metric not isolated per run: %v", m, results[i].Metrics["test"])
		}
	}

	if diff := cmp.Diff(twoBody(), initial); diff != "" {
		t.Errorf("ensemble modified caller bodies:\n%s", diff)
	}
}

func TestEnsembleUnsupportedMethod(t *testing.T) {
	e := NewEnsemble(twoBody(), 0.01, integrators.RK4, integrators.Method(7))
	if _, err := e.Run(context.Background(), Config{Duration: 0.1}); !errors.Is(err, dynamo.ErrUnsupportedIntegrator) {
		t.Errorf("expected ErrUnsupportedIntegrator, got %v", err)
	}
}
