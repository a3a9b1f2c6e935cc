package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/fixtures"
	"github.com/san-kum/nbodysim/internal/integrators"
	"github.com/san-kum/nbodysim/internal/metrics"
	"github.com/san-kum/nbodysim/internal/sim"
)

func newSimulator(key string, dt float64) *sim.Simulator {
	s, err := sim.New(fixtures.MustGet(key).Bodies(), dt)
	Expect(err).NotTo(HaveOccurred())
	return s
}

func expectVec(got, want dynamo.Vec3, tol float64) {
	for k := 0; k < 3; k++ {
		ExpectWithOffset(1, got[k]).To(BeNumerically("~", want[k], tol), "component %d of %v", k, got)
	}
}

var _ = Describe("Simulator", func() {
	Describe("two-body orbit", func() {
		const dt, duration = 0.0001, 10.0

		DescribeTable("keeps the relative energy error bounded",
			func(m integrators.Method, bound float64) {
				s := newSimulator("two-body", dt)
				Expect(s.Evolve(m, duration)).To(Succeed())
				Expect(math.Abs(s.RelativeEnergyError())).To(BeNumerically("<", bound))
			},
			Entry("leapfrog", integrators.Leapfrog, 1e-8),
			Entry("rk2", integrators.RK2, 1e-7),
			Entry("rk4", integrators.RK4, 1e-13),
		)

		It("reproduces the reference rk4 end state", func() {
			s := newSimulator("two-body", dt)
			Expect(s.Evolve(integrators.RK4, duration)).To(Succeed())

			b := s.Bodies()[0]
			expectVec(b.Pos, dynamo.V(0.119923510, -0.072126917, 0), 1e-6)
			expectVec(b.Vel, dynamo.V(0.206161380, 0.042779061, 0), 1e-6)
		})
	})

	Describe("figure-eight", func() {
		It("returns body 0 to the origin after a third of a period", func() {
			s := newSimulator("figure-eight", 0.0001)
			Expect(s.Evolve(integrators.RK4, 2.1088)).To(Succeed())

			Expect(math.Abs(s.RelativeEnergyError())).To(BeNumerically("<", 1e-13))
			b := s.Bodies()[0]
			expectVec(b.Pos, dynamo.V(2.5982241e-5, -2.0259655e-5, 0), 1e-6)
			expectVec(b.Vel, dynamo.V(-0.93227637, -0.86473501, 0), 1e-6)
		})

		It("conserves momentum and angular momentum", func() {
			s := newSimulator("figure-eight", 0.001)
			p := metrics.NewMomentumDrift()
			l := metrics.NewAngularMomentumDrift()
			s.AddMetric(p)
			s.AddMetric(l)

			result, err := s.Run(context.Background(), integrators.Leapfrog, sim.Config{Duration: 2.0, RecordEvery: 500})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Metrics).To(HaveKeyWithValue("momentum_drift", BeNumerically("<", 1e-12)))
			Expect(result.Metrics).To(HaveKeyWithValue("angular_momentum_drift", BeNumerically("<", 1e-12)))
			Expect(result.Frames).To(HaveLen(5))
		})
	})

	Describe("clock", func() {
		for _, f := range fixtures.List() {
			for _, m := range integrators.Methods() {
				It("lands within half a step of the duration for "+f.Key+"/"+m.String(), func() {
					s, err := sim.New(f.Bodies(), 0.001)
					Expect(err).NotTo(HaveOccurred())

					const duration = 0.2537
					Expect(s.Evolve(m, duration)).To(Succeed())
					Expect(s.Time()).To(BeNumerically(">=", duration-0.5*s.Dt()))
					Expect(s.Time()).To(BeNumerically("<", duration+0.5*s.Dt()))
				})
			}
		}
	})

	Describe("diagnostics", func() {
		It("does not change between calls without a step", func() {
			s := newSimulator("broucke-a2", 0.001)
			Expect(s.Evolve(integrators.RK2, 0.1)).To(Succeed())

			ke, pe, rel := s.KineticEnergy(), s.PotentialEnergy(), s.RelativeEnergyError()
			Expect(s.KineticEnergy()).To(Equal(ke))
			Expect(s.PotentialEnergy()).To(Equal(pe))
			Expect(s.RelativeEnergyError()).To(Equal(rel))
			Expect(s.TotalEnergy()).To(Equal(ke + pe))
		})

		It("captures the baseline once at construction", func() {
			s := newSimulator("butterfly-1", 0.001)
			baseline := s.BaselineEnergy()
			Expect(baseline).To(BeNumerically("~", fixtures.MustGet("butterfly-1").Energy, 1e-9))

			Expect(s.Evolve(integrators.RK4, 0.05)).To(Succeed())
			Expect(s.BaselineEnergy()).To(Equal(baseline))
		})
	})

	Describe("ensemble", func() {
		It("runs every method on its own copy", func() {
			initial := fixtures.MustGet("figure-8").Bodies()
			results, err := sim.NewEnsemble(initial, 0.001, integrators.Methods()...).
				WithMetrics(func() []sim.Metric { return []sim.Metric{metrics.NewEnergyDrift()} }).
				Run(context.Background(), sim.Config{Duration: 0.5, RecordEvery: 100})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(3))

			for _, r := range results {
				Expect(r.StepsTaken).To(Equal(500))
				Expect(r.Metrics["energy_drift"]).To(BeNumerically("<", 1e-6))
				Expect(r.Metrics["energy_drift"]).To(BeNumerically(">=", math.Abs(r.EnergyError)))
			}
			Expect(initial).To(Equal(fixtures.MustGet("figure-8").Bodies()))
		})
	})
})
