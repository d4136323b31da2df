package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/physics"
	"github.com/san-kum/poolsim/internal/ptmath"
)

var _ = Describe("EvolveBallMotion", func() {
	var p objects.BallParams

	BeforeEach(func() {
		p = objects.DefaultBallParams()
	})

	It("leaves a stationary ball untouched", func() {
		rvw := ptmath.RVW{R: ptmath.Vec{0.5, 0.5, p.R}}
		out, s := physics.EvolveBallMotion(objects.Stationary, rvw, p, 10)
		Expect(out).To(Equal(rvw))
		Expect(s).To(Equal(objects.Stationary))
	})

	It("leaves a pocketed ball untouched", func() {
		rvw := ptmath.RVW{R: ptmath.Vec{0.5, 0.5, -0.08}}
		out, s := physics.EvolveBallMotion(objects.Pocketed, rvw, p, 10)
		Expect(out).To(Equal(rvw))
		Expect(s).To(Equal(objects.Pocketed))
	})

	It("is the identity at t = 0", func() {
		rvw := ptmath.RVW{
			R: ptmath.Vec{0.5, 0.5, p.R},
			V: ptmath.Vec{1, 0.2, 0},
			W: ptmath.Vec{0, 0, 12},
		}
		out, s := physics.EvolveBallMotion(objects.Sliding, rvw, p, 0)
		Expect(out).To(Equal(rvw))
		Expect(s).To(Equal(objects.Sliding))
	})

	It("hands a sliding ball over to rolling after the slide time", func() {
		rvw := ptmath.RVW{R: ptmath.Vec{0.5, 0.5, p.R}, V: ptmath.Vec{2, 0, 0}}
		dtau := ptmath.SlideTime(rvw, p.R, p.US, p.G)

		out, s := physics.EvolveBallMotion(objects.Sliding, rvw, p, dtau*1.01)
		Expect(s).To(Equal(objects.Rolling))

		// Rolling condition: contact point at rest.
		Expect(ptmath.RelVelocity(out, p.R).Norm()).To(BeNumerically("<", 1e-9))
	})

	It("brings a rolling ball to rest eventually", func() {
		v := ptmath.Vec{1, 0, 0}
		rvw := ptmath.RVW{
			R: ptmath.Vec{0.5, 0.5, p.R},
			V: v,
			W: ptmath.RotateZ(v.Scale(1/p.R), math.Pi/2),
		}

		out, s := physics.EvolveBallMotion(objects.Rolling, rvw, p, 1e6)
		Expect(s).To(Equal(objects.Stationary))
		Expect(out.V.Norm()).To(BeNumerically("~", 0, 1e-9))
		Expect(out.W.Norm()).To(BeNumerically("~", 0, 1e-9))
	})

	It("never increases energy while on the cloth", func() {
		rvw := ptmath.RVW{
			R: ptmath.Vec{0.5, 0.5, p.R},
			V: ptmath.Vec{1.5, -0.7, 0},
			W: ptmath.Vec{0, 30, 8},
		}

		prev := ptmath.BallEnergy(rvw, p.R, p.M)
		for _, t := range []float64{0.01, 0.05, 0.2, 1, 5} {
			out, _ := physics.EvolveBallMotion(objects.Sliding, rvw, p, t)
			e := ptmath.BallEnergy(out, p.R, p.M)
			Expect(e).To(BeNumerically("<=", prev+1e-9))
			prev = e
		}
	})
})

var _ = Describe("EvolveSlideState", func() {
	p := objects.DefaultBallParams()

	It("decays the contact-point velocity along a fixed direction", func() {
		rvw := ptmath.RVW{
			R: ptmath.Vec{0, 0, p.R},
			V: ptmath.Vec{2, 0, 0},
			W: ptmath.Vec{0, -10, 0},
		}

		u0 := ptmath.RelVelocity(rvw, p.R).Unit()
		out := physics.EvolveSlideState(rvw, p.R, p.US, p.USp(), p.G, 0.05)
		u1 := ptmath.RelVelocity(out, p.R).Unit()

		Expect(u1.Sub(u0).Norm()).To(BeNumerically("<", 1e-9))
	})

	It("respects mirror symmetry about the initial velocity", func() {
		base := ptmath.RVW{R: ptmath.Vec{0, 0, p.R}, V: ptmath.Vec{2, 0, 0}}

		// Angular velocity is a pseudovector: reflecting across the x-z
		// plane flips the x and z spin components.
		spinUp, spinDown := base, base
		spinUp.W = ptmath.Vec{15, 0, 0}
		spinDown.W = ptmath.Vec{-15, 0, 0}

		a := physics.EvolveSlideState(spinUp, p.R, p.US, p.USp(), p.G, 0.1)
		b := physics.EvolveSlideState(spinDown, p.R, p.US, p.USp(), p.G, 0.1)

		Expect(a.R[0]).To(BeNumerically("~", b.R[0], 1e-12))
		Expect(a.R[1]).To(BeNumerically("~", -b.R[1], 1e-12))
		Expect(a.V[0]).To(BeNumerically("~", b.V[0], 1e-12))
		Expect(a.V[1]).To(BeNumerically("~", -b.V[1], 1e-12))
	})
})

var _ = Describe("EvolvePerpendicularSpinComponent", func() {
	p := objects.DefaultBallParams()

	It("clamps at zero instead of overshooting", func() {
		wz := physics.EvolvePerpendicularSpinComponent(5, p.R, p.USp(), p.G, 1e6)
		Expect(wz).To(BeZero())
	})

	It("decays symmetrically for either spin direction", func() {
		up := physics.EvolvePerpendicularSpinComponent(20, p.R, p.USp(), p.G, 0.1)
		down := physics.EvolvePerpendicularSpinComponent(-20, p.R, p.USp(), p.G, 0.1)
		Expect(up).To(BeNumerically("~", -down, 1e-12))
		Expect(up).To(BeNumerically("<", 20))
		Expect(up).To(BeNumerically(">", 0))
	})
})

var _ = Describe("EvolveAirborneState", func() {
	p := objects.DefaultBallParams()

	It("follows a ballistic arc and keeps its spin", func() {
		rvw := ptmath.RVW{
			R: ptmath.Vec{0, 0, p.R},
			V: ptmath.Vec{1, 0, 2},
			W: ptmath.Vec{3, 4, 5},
		}

		t := 0.3
		out := physics.EvolveAirborneState(rvw, p.G, t)

		Expect(out.R[0]).To(BeNumerically("~", rvw.R[0]+rvw.V[0]*t, 1e-12))
		Expect(out.R[2]).To(BeNumerically("~", rvw.R[2]+rvw.V[2]*t-0.5*p.G*t*t, 1e-12))
		Expect(out.V[2]).To(BeNumerically("~", rvw.V[2]-p.G*t, 1e-12))
		Expect(out.W).To(Equal(rvw.W))
	})
})
