// Package engine implements event-based shot evolution: detect the earliest
// upcoming event by solving polynomial distance equations, advance every
// ball analytically to that instant, resolve the event, repeat.
package engine

import (
	"math"

	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/physics"
	"github.com/san-kum/poolsim/internal/ptmath"
	"github.com/san-kum/poolsim/internal/ptmath/roots"
)

func nontranslating(s objects.MotionState) bool {
	return s == objects.Spinning || s == objects.Pocketed || s == objects.Stationary
}

// frictionFor picks the friction coefficient governing the ball's current
// trajectory polynomial.
func frictionFor(b *objects.Ball) float64 {
	if b.State.S == objects.Sliding {
		return b.Params.US
	}
	return b.Params.UR
}

// skipBallBallCollision prunes pairs that geometrically cannot collide,
// avoiding a quartic solve.
func skipBallBallCollision(rvw1, rvw2 ptmath.RVW, s1, s2 objects.MotionState, R1, R2 float64) bool {
	if nontranslating(s1) && nontranslating(s2) {
		return true
	}
	if s1 == objects.Pocketed || s2 == objects.Pocketed {
		return true
	}

	if s1 == objects.Rolling && s2 == objects.Rolling {
		// Straight-line trajectories moving apart never meet.
		r12 := rvw2.R.Sub(rvw1.R)
		if r12.Dot(rvw1.V) <= 0 && r12.Dot(rvw2.V) >= 0 {
			return true
		}
	}

	if s1 == objects.Rolling && (s2 == objects.Spinning || s2 == objects.Stationary) {
		if rollingMissesStationary(rvw1, rvw2, R1, R2) {
			return true
		}
	}
	if s2 == objects.Rolling && (s1 == objects.Spinning || s1 == objects.Stationary) {
		if rollingMissesStationary(rvw2, rvw1, R1, R2) {
			return true
		}
	}

	return false
}

// rollingMissesStationary checks whether a straight-line trajectory towards
// a stationary ball falls outside the cone of headings that can produce
// contact.
func rollingMissesStationary(mover, target ptmath.RVW, R1, R2 float64) bool {
	r12 := target.R.Sub(mover.R)
	d := r12.Norm()
	angle := math.Acos(r12.Unit().Dot(mover.V.Unit()))
	maxHitAngle := 0.5*math.Pi - math.Acos((R1+R2)/d)
	return angle > maxHitAngle
}

// getU returns the unit direction of the contact point's relative velocity,
// rotated into the ball frame. A rolling ball slides nowhere, so the
// direction defaults to the heading axis.
func getU(rvw ptmath.RVW, R, phi float64, s objects.MotionState) ptmath.Vec {
	if s == objects.Rolling {
		return ptmath.Vec{1, 0, 0}
	}
	relVel := ptmath.RelVelocity(rvw, R)
	if relVel.IsZero() {
		return ptmath.Vec{1, 0, 0}
	}
	return ptmath.RotateZ(relVel.Unit(), -phi)
}

// trajectoryTerms returns the table-frame quadratic coefficients of the
// ball's center trajectory, x(t) = ax*t^2 + bx*t + cx (same for y). Airborne
// balls have no cloth friction, so their x-y acceleration terms vanish.
func trajectoryTerms(rvw ptmath.RVW, s objects.MotionState, mu, g, R float64) (ax, ay, bx, by, cx, cy float64) {
	cx, cy = rvw.R[0], rvw.R[1]

	if nontranslating(s) {
		return 0, 0, 0, 0, cx, cy
	}
	if s == objects.Airborne {
		return 0, 0, rvw.V[0], rvw.V[1], cx, cy
	}

	phi := ptmath.Angle(rvw.V)
	v := rvw.V.Norm()
	u := getU(rvw, R, phi, s)

	K := -0.5 * mu * g
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	ax = K * (u[0]*cosPhi - u[1]*sinPhi)
	ay = K * (u[0]*sinPhi + u[1]*cosPhi)
	bx = v * cosPhi
	by = v * sinPhi
	return ax, ay, bx, by, cx, cy
}

// ballBallCollisionCoeffs builds the quartic whose smallest positive root
// is the time when the center separation reaches 2R.
func ballBallCollisionCoeffs(b1, b2 *objects.Ball) [5]float64 {
	a1x, a1y, b1x, b1y, c1x, c1y := trajectoryTerms(
		b1.State.RVW, b1.State.S, frictionFor(b1), b1.Params.G, b1.Params.R)
	a2x, a2y, b2x, b2y, c2x, c2y := trajectoryTerms(
		b2.State.RVW, b2.State.S, frictionFor(b2), b2.Params.G, b2.Params.R)

	Ax, Ay := a2x-a1x, a2y-a1y
	Bx, By := b2x-b1x, b2y-b1y
	Cx, Cy := c2x-c1x, c2y-c1y

	R := b1.Params.R

	return [5]float64{
		Ax*Ax + Ay*Ay,
		2*Ax*Bx + 2*Ay*By,
		Bx*Bx + 2*Ax*Cx + 2*Ay*Cy + By*By,
		2*Bx*Cx + 2*By*Cy,
		Cx*Cx + Cy*Cy - 4*R*R,
	}
}

// ballLinearCushionCollisionTime returns the time until the ball's center
// reaches distance R from the cushion line, restricted to roots whose
// contact point lies within the segment endpoints.
func ballLinearCushionCollisionTime(b *objects.Ball, s *objects.LinearCushionSegment) float64 {
	state := b.State.S
	if nontranslating(state) {
		return math.Inf(1)
	}

	mu := frictionFor(b)
	R := b.Params.R
	ax, ay, bx, by, cx, cy := trajectoryTerms(b.State.RVW, state, mu, b.Params.G, R)

	lx, ly, l0 := s.Lx(), s.Ly(), s.L0()
	A := lx*ax + ly*ay
	B := lx*bx + ly*by
	base := l0 + lx*cx + ly*cy
	offset := R * math.Sqrt(lx*lx+ly*ly)

	var candidates []complex128
	switch s.Direction {
	case objects.Side1:
		r1, r2 := roots.Quadratic(A, B, base+offset)
		candidates = []complex128{r1, r2}
	case objects.Side2:
		r1, r2 := roots.Quadratic(A, B, base-offset)
		candidates = []complex128{r1, r2}
	default:
		r1, r2 := roots.Quadratic(A, B, base+offset)
		r3, r4 := roots.Quadratic(A, B, base-offset)
		candidates = []complex128{r1, r2, r3, r4}
	}

	minTime := math.Inf(1)
	for _, root := range candidates {
		if math.Abs(imag(root)) > ptmath.Eps {
			continue
		}
		t := real(root)
		if t <= ptmath.Eps || t >= minTime {
			continue
		}

		// Roots beyond the segment endpoints hit the line, not the cushion.
		rvwT, _ := physics.EvolveBallMotion(state, b.State.RVW, b.Params, t)
		diff := s.P2.Sub(s.P1)
		score := -s.P1.Sub(rvwT.R).Dot(diff) / diff.Dot(diff)
		if score < 0 || score > 1 {
			continue
		}

		minTime = t
	}

	return minTime
}

// circleInterceptCoeffs builds the quartic for the ball trajectory meeting a
// vertical cylinder of radius r centered at (a, b).
func circleInterceptCoeffs(b1 *objects.Ball, a, b, r float64) [5]float64 {
	ax, ay, bx, by, cx, cy := trajectoryTerms(
		b1.State.RVW, b1.State.S, frictionFor(b1), b1.Params.G, b1.Params.R)

	A := 0.5 * (ax*ax + ay*ay)
	B := ax*bx + ay*by
	C := ax*(cx-a) + ay*(cy-b) + 0.5*(bx*bx+by*by)
	D := bx*(cx-a) + by*(cy-b)
	E := 0.5*(a*a+b*b+cx*cx+cy*cy-r*r) - (cx*a + cy*b)

	return [5]float64{A, B, C, D, E}
}

// ballCircularCushionCollisionCoeffs targets the jaw surface, offset by the
// ball radius.
func ballCircularCushionCollisionCoeffs(b *objects.Ball, s *objects.CircularCushionSegment) [5]float64 {
	return circleInterceptCoeffs(b, s.Center[0], s.Center[1], s.Radius+b.Params.R)
}

// ballPocketCollisionCoeffs targets the pocket mouth itself: the ball falls
// when its center crosses the rim, so no radius offset applies.
func ballPocketCollisionCoeffs(b *objects.Ball, p *objects.Pocket) [5]float64 {
	return circleInterceptCoeffs(b, p.Center[0], p.Center[1], p.Radius)
}

// ballTableCollisionTime returns when an airborne ball's underside meets the
// cloth.
func ballTableCollisionTime(b *objects.Ball) float64 {
	if b.State.S != objects.Airborne {
		return math.Inf(1)
	}

	g := b.Params.G
	z0 := b.State.RVW.R[2]
	vz := b.State.RVW.V[2]

	// A ball leaving the cloth sits at z = R exactly, so the quadratic has a
	// root at t = 0 that must not shadow the real landing time.
	r1, r2 := roots.Quadratic(-0.5*g, vz, z0-b.Params.R)
	t := math.Inf(1)
	for _, root := range []complex128{r1, r2} {
		if math.Abs(imag(root)) > ptmath.Eps {
			continue
		}
		if re := real(root); re > ptmath.Eps && re < t {
			t = re
		}
	}
	return t
}

// airborneHeight returns the center height of an airborne ball at time t.
func airborneHeight(b *objects.Ball, t float64) float64 {
	return b.State.RVW.R[2] + b.State.RVW.V[2]*t - 0.5*b.Params.G*t*t
}

// airbornePocketCaptureTime decides whether an airborne ball drops into the
// pocket. Two paths lead in: the ball lands while its center is over the
// mouth, or it crosses the mouth cylinder low enough that the far jaw
// catches it. A ball exiting the mouth above 7/5 of its radius clears the
// far lip and flies on.
func airbornePocketCaptureTime(b *objects.Ball, p *objects.Pocket) float64 {
	if b.State.S != objects.Airborne {
		return math.Inf(1)
	}

	R := b.Params.R
	rvw := b.State.RVW

	// Direct fall: at the landing instant the center is over the mouth. The
	// event fires just before touchdown so the ball is still airborne when
	// resolved.
	tLand := ballTableCollisionTime(b)
	if !math.IsInf(tLand, 1) {
		x := rvw.R[0] + rvw.V[0]*tLand
		y := rvw.R[1] + rvw.V[1]*tLand
		dx, dy := x-p.Center[0], y-p.Center[1]
		if math.Sqrt(dx*dx+dy*dy) < p.Radius {
			return tLand * (1 - ptmath.Eps)
		}
	}

	// Fly-through: find where the x-y path crosses the mouth cylinder.
	dx0, dy0 := rvw.R[0]-p.Center[0], rvw.R[1]-p.Center[1]
	vx, vy := rvw.V[0], rvw.V[1]
	a := vx*vx + vy*vy
	bq := 2 * (dx0*vx + dy0*vy)
	c := dx0*dx0 + dy0*dy0 - p.Radius*p.Radius
	if a == 0 {
		return math.Inf(1)
	}
	disc := bq*bq - 4*a*c
	if disc <= 0 {
		return math.Inf(1)
	}
	sqrtD := math.Sqrt(disc)
	tIn := (-bq - sqrtD) / (2 * a)
	tOut := (-bq + sqrtD) / (2 * a)
	if tOut <= ptmath.Eps {
		return math.Inf(1)
	}
	if tIn < 0 {
		tIn = 0
	}
	if !math.IsInf(tLand, 1) && tIn >= tLand {
		// The ball lands outside the mouth before ever reaching it.
		return math.Inf(1)
	}

	hIn := airborneHeight(b, tIn)
	hOut := airborneHeight(b, tOut)
	if hIn < R {
		// Entering below lip height means the near jaw is struck instead.
		return math.Inf(1)
	}
	if hOut <= 7.0/5.0*R {
		return (tIn + tOut) / 2
	}
	return math.Inf(1)
}
