package ptmath

import "math"

// RVW is the kinematic state block of a ball: displacement, linear velocity
// and angular velocity.
type RVW struct {
	R Vec `json:"r"`
	V Vec `json:"v"`
	W Vec `json:"w"`
}

// RotateZ rotates all three rows of the block by phi about the z-axis.
func (q RVW) RotateZ(phi float64) RVW {
	return RVW{
		R: RotateZ(q.R, phi),
		V: RotateZ(q.V, phi),
		W: RotateZ(q.W, phi),
	}
}

// SurfaceVelocity computes the velocity of the point on the ball's surface
// in unit direction d from its center.
func SurfaceVelocity(q RVW, d Vec, radius float64) Vec {
	return q.V.Add(Cross(q.W, d.Scale(radius)))
}

// RelVelocity computes the velocity of the ball's contact point with the
// cloth, relative to the cloth. Non-zero whenever the ball is sliding.
func RelVelocity(q RVW, radius float64) Vec {
	return SurfaceVelocity(q, Vec{0, 0, -1}, radius)
}

// SlideTime returns how long the ball stays in the sliding state before the
// rolling condition is met.
func SlideTime(q RVW, radius, us, g float64) float64 {
	if us == 0 {
		return math.Inf(1)
	}
	return 2 * RelVelocity(q, radius).Norm() / (7 * us * g)
}

// RollTime returns how long the ball rolls before its velocity decays to
// zero.
func RollTime(q RVW, ur, g float64) float64 {
	if ur == 0 {
		return math.Inf(1)
	}
	return q.V.Norm() / (ur * g)
}

// SpinTime returns how long the perpendicular spin component takes to decay
// to zero.
func SpinTime(q RVW, radius, usp, g float64) float64 {
	if usp == 0 {
		return math.Inf(1)
	}
	return math.Abs(q.W[2]) * 2 / 5 * radius / usp / g
}

// BallEnergy returns the kinetic plus rotational energy of a ball.
func BallEnergy(q RVW, radius, m float64) float64 {
	lin := m * q.V.NormSq() / 2
	rot := (2.0 / 5.0 * m * radius * radius) * q.W.NormSq() / 2
	return lin + rot
}
