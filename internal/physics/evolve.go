package physics

import (
	"math"

	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/ptmath"
)

// EvolveBallMotion advances a ball's kinematic block by time t, walking
// through motion state boundaries as friction bleeds energy. The returned
// state label reflects where the ball ends up.
func EvolveBallMotion(state objects.MotionState, rvw ptmath.RVW, p objects.BallParams, t float64) (ptmath.RVW, objects.MotionState) {
	if state == objects.Stationary || state == objects.Pocketed {
		return rvw, state
	}

	if state == objects.Airborne {
		return EvolveAirborneState(rvw, p.G, t), objects.Airborne
	}

	if state == objects.Sliding {
		dtauE := ptmath.SlideTime(rvw, p.R, p.US, p.G)
		if t >= dtauE {
			rvw = EvolveSlideState(rvw, p.R, p.US, p.USp(), p.G, dtauE)
			state = objects.Rolling
			t -= dtauE
		} else {
			return EvolveSlideState(rvw, p.R, p.US, p.USp(), p.G, t), objects.Sliding
		}
	}

	if state == objects.Rolling {
		dtauE := ptmath.RollTime(rvw, p.UR, p.G)
		if t >= dtauE {
			rvw = EvolveRollState(rvw, p.R, p.UR, p.USp(), p.G, dtauE)
			state = objects.Spinning
			t -= dtauE
		} else {
			return EvolveRollState(rvw, p.R, p.UR, p.USp(), p.G, t), objects.Rolling
		}
	}

	if state == objects.Spinning {
		dtauE := ptmath.SpinTime(rvw, p.R, p.USp(), p.G)
		if t >= dtauE {
			return EvolvePerpendicularSpin(rvw, p.R, p.USp(), p.G, dtauE), objects.Stationary
		}
		return EvolvePerpendicularSpin(rvw, p.R, p.USp(), p.G, t), objects.Spinning
	}

	return rvw, state
}

// EvolveSlideState advances a sliding ball by t. The block is rotated into
// the ball frame aligned with the initial velocity, evolved under sliding
// friction acting against the contact-point velocity, then rotated back.
func EvolveSlideState(rvw ptmath.RVW, R, us, usp, g, t float64) ptmath.RVW {
	if t == 0 {
		return rvw
	}

	phi := ptmath.Angle(rvw.V)
	b0 := rvw.RotateZ(-phi)
	u0 := ptmath.RotateZ(ptmath.RelVelocity(rvw, R).Unit(), -phi)

	var b ptmath.RVW
	b.R = ptmath.Vec{
		b0.V[0]*t - 0.5*us*g*t*t*u0[0],
		-0.5 * us * g * t * t * u0[1],
		0,
	}
	b.V = b0.V.Sub(u0.Scale(us * g * t))
	b.W = b0.W.Sub(ptmath.Cross(u0, ptmath.Vec{0, 0, 1}).Scale(5 / 2.0 / R * us * g * t))

	// The x-y friction couple does not touch the z spin; it decays on its
	// own schedule.
	b.W[2] = b0.W[2]
	b = EvolvePerpendicularSpin(b, R, usp, g, t)

	out := b.RotateZ(phi)
	out.R = out.R.Add(rvw.R)
	return out
}

// EvolveRollState advances a rolling ball by t. Velocity decays along its
// own direction and the x-y angular velocity stays locked to it by the
// rolling condition.
func EvolveRollState(rvw ptmath.RVW, R, ur, usp, g, t float64) ptmath.RVW {
	if t == 0 {
		return rvw
	}

	vHat := rvw.V.Unit()
	r := rvw.R.Add(rvw.V.Scale(t)).Sub(vHat.Scale(0.5 * ur * g * t * t))
	v := rvw.V.Sub(vHat.Scale(ur * g * t))
	w := ptmath.RotateZ(v.Scale(1/R), math.Pi/2)

	spun := EvolvePerpendicularSpin(rvw, R, usp, g, t)
	w[2] = spun.W[2]

	return ptmath.RVW{R: r, V: v, W: w}
}

// EvolvePerpendicularSpinComponent decays the z spin towards zero, clamping
// at zero rather than overshooting.
func EvolvePerpendicularSpinComponent(wz, R, usp, g, t float64) float64 {
	if t == 0 || math.Abs(wz) < ptmath.Eps {
		return wz
	}

	alpha := 5 * usp * g / (2 * R)
	if t > math.Abs(wz)/alpha {
		t = math.Abs(wz) / alpha
	}

	if wz > 0 {
		return wz - alpha*t
	}
	return wz + alpha*t
}

// EvolvePerpendicularSpin returns a copy of the block with the z spin
// decayed by t.
func EvolvePerpendicularSpin(rvw ptmath.RVW, R, usp, g, t float64) ptmath.RVW {
	rvw.W[2] = EvolvePerpendicularSpinComponent(rvw.W[2], R, usp, g, t)
	return rvw
}

// EvolveAirborneState advances an airborne ball by t under gravity alone.
// Angular velocity is unchanged while nothing touches the ball.
func EvolveAirborneState(rvw ptmath.RVW, g, t float64) ptmath.RVW {
	if t == 0 {
		return rvw
	}

	rvw.R = rvw.R.Add(rvw.V.Scale(t)).Add(ptmath.Vec{0, 0, -0.5 * g * t * t})
	rvw.V = rvw.V.Add(ptmath.Vec{0, 0, -g * t})
	return rvw
}
