package cartpole_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cartpole/internal/cartpole"
)

// A pole twice the default length on a five step budget, so a handful of
// pushes exhausts the episode cleanly.
func fixtureParams() cartpole.Params {
	return cartpole.Params{
		Gravity:       9.8,
		CartMass:      1.0,
		PoleMass:      0.1,
		HalfLength:    1.0,
		ForceMag:      10.0,
		Tau:           0.02,
		MaxSteps:      5,
		XLimit:        2.4,
		ThetaLimitDeg: 24.0,
	}
}

var _ = Describe("Init", func() {
	It("draws every component within the perturbation bounds", func() {
		rng := rand.New(rand.NewSource(1))
		for i := 0; i < 10000; i++ {
			s := cartpole.Init(rng)
			Expect(s.X).To(And(BeNumerically(">=", -0.05), BeNumerically("<=", 0.05)))
			Expect(s.XDot).To(And(BeNumerically(">=", -0.05), BeNumerically("<=", 0.05)))
			Expect(s.Theta).To(And(BeNumerically(">=", -0.05), BeNumerically("<=", 0.05)))
			Expect(s.ThetaDot).To(And(BeNumerically(">=", -0.05), BeNumerically("<=", 0.05)))
			Expect(s.Steps).To(BeZero())
			Expect(s.Done).To(BeFalse())
			Expect(s.Outcome).To(Equal(cartpole.Running))
		}
	})

	It("is reproducible for a fixed seed", func() {
		a := cartpole.Init(rand.New(rand.NewSource(42)))
		b := cartpole.Init(rand.New(rand.NewSource(42)))
		Expect(a).To(Equal(b))
	})
})

var _ = Describe("Step", func() {
	var p cartpole.Params

	BeforeEach(func() {
		p = fixtureParams()
	})

	It("is deterministic and does not mutate its input", func() {
		start := cartpole.State{X: 0.01, XDot: -0.02, Theta: 0.03, ThetaDot: -0.04}
		saved := start
		first := cartpole.Step(start, cartpole.Right, p)
		second := cartpole.Step(start, cartpole.Right, p)
		Expect(first).To(Equal(second))
		Expect(start).To(Equal(saved))
	})

	It("increments the step counter by exactly one", func() {
		s := cartpole.State{}
		for i := 1; i <= 5; i++ {
			s = cartpole.Step(s, cartpole.Left, p)
			Expect(s.Steps).To(Equal(i))
		}
	})

	It("reaches max_steps after five pushes from rest", func() {
		s := cartpole.State{}
		prevX := s.X
		prevXDot := s.XDot
		for i := 0; i < 5; i++ {
			s = cartpole.Step(s, cartpole.Right, p)
			Expect(s.X).To(BeNumerically(">=", prevX))
			Expect(s.XDot).To(BeNumerically(">", prevXDot))
			prevX = s.X
			prevXDot = s.XDot
		}
		Expect(s.Steps).To(Equal(5))
		Expect(s.Done).To(BeTrue())
		Expect(s.Outcome).To(Equal(cartpole.MaxSteps))
	})

	It("mirrors the trajectory exactly when the force direction flips", func() {
		right := cartpole.State{}
		left := cartpole.State{}
		for i := 0; i < 5; i++ {
			right = cartpole.Step(right, cartpole.Right, p)
			left = cartpole.Step(left, cartpole.Left, p)
			Expect(left.X).To(Equal(-right.X))
			Expect(left.XDot).To(Equal(-right.XDot))
			Expect(left.Theta).To(Equal(-right.Theta))
			Expect(left.ThetaDot).To(Equal(-right.ThetaDot))
		}
		Expect(left.Outcome).To(Equal(cartpole.MaxSteps))
	})

	It("prefers out_of_bounds when position and angle fail together", func() {
		p.XLimit = 0.1
		p.ThetaLimitDeg = 5.0
		s := cartpole.State{X: 0.09, XDot: 10.0, Theta: 0.08, ThetaDot: 10.0}
		next := cartpole.Step(s, cartpole.Right, p)

		thetaLimit := p.ThetaLimitDeg * math.Pi / 180
		Expect(next.X).To(BeNumerically(">", p.XLimit))
		Expect(next.Theta).To(BeNumerically(">", thetaLimit))
		Expect(next.Done).To(BeTrue())
		Expect(next.Outcome).To(Equal(cartpole.OutOfBounds))
	})

	It("treats the angle threshold as a strict inequality", func() {
		limit := p.ThetaLimitDeg * math.Pi / 180

		// thetaDot is zero, so the post-integration angle equals the
		// starting angle exactly.
		at := cartpole.Step(cartpole.State{Theta: limit}, cartpole.Right, p)
		Expect(at.Outcome).NotTo(Equal(cartpole.PoleFell))

		beyond := cartpole.Step(cartpole.State{Theta: math.Nextafter(limit, math.Inf(1))}, cartpole.Right, p)
		Expect(beyond.Done).To(BeTrue())
		Expect(beyond.Outcome).To(Equal(cartpole.PoleFell))
	})

	It("agrees with an independent re-derivation of the outcome", func() {
		rng := rand.New(rand.NewSource(7))
		thetaLimit := p.ThetaLimitDeg * math.Pi / 180
		for trial := 0; trial < 200; trial++ {
			s := cartpole.Init(rng)
			for !s.Done {
				a := cartpole.Left
				if rng.Float64() < 0.5 {
					a = cartpole.Right
				}
				s = cartpole.Step(s, a, p)
			}

			var want cartpole.Outcome
			switch {
			case s.X < -p.XLimit || s.X > p.XLimit:
				want = cartpole.OutOfBounds
			case s.Theta < -thetaLimit || s.Theta > thetaLimit:
				want = cartpole.PoleFell
			default:
				want = cartpole.MaxSteps
			}
			Expect(s.Outcome).To(Equal(want))
			Expect(s.Steps).To(BeNumerically("<=", p.MaxSteps))
		}
	})

	It("propagates NaN for a zero total mass instead of failing", func() {
		p.CartMass = 0
		p.PoleMass = 0
		s := cartpole.Step(cartpole.State{}, cartpole.Right, p)
		Expect(math.IsNaN(s.XDot) || math.IsInf(s.XDot, 0)).To(BeTrue())
		Expect(s.Steps).To(Equal(1))
	})

	It("keeps terminal outcomes mutually exclusive over default params", func() {
		rng := rand.New(rand.NewSource(11))
		def := cartpole.DefaultParams()
		counts := map[cartpole.Outcome]int{}
		for trial := 0; trial < 50; trial++ {
			s := cartpole.Init(rng)
			for !s.Done {
				Expect(s.Outcome).To(Equal(cartpole.Running))
				a := cartpole.Left
				if s.Theta > 0 {
					a = cartpole.Right
				}
				s = cartpole.Step(s, a, def)
			}
			counts[s.Outcome]++
		}
		Expect(counts).NotTo(HaveKey(cartpole.Running))
		Expect(counts).NotTo(HaveKey(cartpole.ManualStop))
	})
})
