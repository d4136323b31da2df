package resolve

import (
	"math"

	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/ptmath"
)

// cueStrike computes the ball's outgoing linear and angular velocity for a
// cue tip of mass M striking a ball of mass m at speed V0, hitting contact
// point Q on the ball's surface. Derivation follows Dr. Dave's technical
// proof TP A-30.
func cueStrike(m, M, R, V0, phi, theta float64, Q ptmath.Vec) (v, w ptmath.Vec) {
	phi *= math.Pi / 180
	theta *= math.Pi / 180

	// Moment of inertia over mass.
	Im := 2.0 / 5.0 * R * R

	a, c, b := Q[0], Q[1], Q[2]

	sinT, cosT := math.Sin(theta), math.Cos(theta)
	temp := a*a + b*cosT*b*cosT + c*sinT*c*sinT - 2*b*c*cosT*sinT
	speed := 2 * V0 / (1 + m/M + temp/Im)

	// An elevated cue drives the ball into the cloth; the rebound returns
	// the vertical component upward. The caller decides whether the strike
	// is steep enough for the ball to actually leave the cloth.
	vB := ptmath.Vec{0, -speed * cosT, speed * sinT}

	wB := ptmath.Vec{
		-c*sinT + b*cosT,
		a * sinT,
		-a * cosT,
	}.Scale(speed / Im)

	rot := phi + math.Pi/2
	return ptmath.RotateZ(vB, rot), ptmath.RotateZ(wB, rot)
}

// InstantaneousPoint models the cue strike as an instantaneous point-like
// impulse. Tip offsets a (side) and b (vertical) are fractions of the ball
// radius; EnglishThrottle scales the spin the model generates. Cue
// elevations at or above JumpThreshold degrees launch the ball off the
// cloth; shallower strikes shed the vertical component.
type InstantaneousPoint struct {
	EnglishThrottle float64
	JumpThreshold   float64
}

// DefaultJumpThreshold is the cue elevation below which a strike keeps the
// ball on the cloth.
const DefaultJumpThreshold = 20.0

func (ip InstantaneousPoint) Resolve(cue *objects.Cue, ball *objects.Ball) {
	// The contact point is specified in the cue frame; rotate it by the cue
	// elevation into the ball frame.
	thetaRad := cue.Theta * math.Pi / 180
	cueC := math.Sqrt(1 - cue.A*cue.A - cue.B*cue.B)
	ballA := cue.A
	ballC := math.Cos(thetaRad)*cueC - math.Sin(thetaRad)*cue.B
	ballB := math.Sin(thetaRad)*cueC + math.Cos(thetaRad)*cue.B

	Q := ptmath.Vec{ballA, ballC, ballB}.Scale(ball.Params.R)
	v, w := cueStrike(ball.Params.M, cue.Specs.M, ball.Params.R, cue.V0, cue.Phi, cue.Theta, Q)

	throttle := ip.EnglishThrottle
	if throttle == 0 {
		throttle = 1
	}
	jumpAt := ip.JumpThreshold
	if jumpAt == 0 {
		jumpAt = DefaultJumpThreshold
	}
	if cue.Theta < jumpAt {
		v[2] = 0
	}

	ball.State.RVW.V = v
	ball.State.RVW.W = w.Scale(throttle)

	// A center strike with no elevation produces pure rolling only by
	// accident; classify by the contact point velocity.
	switch {
	case v[2] > 0:
		ball.State.S = objects.Airborne
	case ptmath.RelVelocity(ball.State.RVW, ball.Params.R).IsZero():
		ball.State.S = objects.Rolling
	default:
		ball.State.S = objects.Sliding
	}
}
