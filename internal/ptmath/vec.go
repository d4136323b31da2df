package ptmath

import "math"

// Eps is the numerical tolerance used throughout collision detection,
// 100x machine epsilon.
const Eps = 100 * 2.220446049250313e-16

// EpsSpace is the spacer distance inserted between objects after collision
// resolution so they are guaranteed non-intersecting.
const EpsSpace = 1e-9

// Vec is a 3D vector with value semantics.
type Vec [3]float64

func (v Vec) Add(w Vec) Vec {
	return Vec{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

func (v Vec) Sub(w Vec) Vec {
	return Vec{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

func (v Vec) Scale(s float64) Vec {
	return Vec{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec) Dot(w Vec) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

func (v Vec) NormSq() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

func (v Vec) Norm() float64 {
	return math.Sqrt(v.NormSq())
}

func (v Vec) Norm2D() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1])
}

// Unit returns the unit vector of v. The zero vector is returned unchanged.
func (v Vec) Unit() Vec {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

func (v Vec) IsZero() bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// Cross computes the cross product u x v.
func Cross(u, v Vec) Vec {
	return Vec{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}

// Angle returns the counter-clockwise angle of v's projection onto the x-y
// plane, measured from the +x axis, in [0, 2pi).
func Angle(v Vec) float64 {
	ang := math.Atan2(v[1], v[0])
	if ang < 0 {
		return 2*math.Pi + ang
	}
	return ang
}

// AngleBetween returns the counter-clockwise angle from v1 to v2, both
// projected onto the x-y plane, in [0, 2pi).
func AngleBetween(v2, v1 Vec) float64 {
	ang := math.Atan2(v2[1], v2[0]) - math.Atan2(v1[1], v1[0])
	if ang < 0 {
		return 2*math.Pi + ang
	}
	return ang
}

// RotateZ rotates v counter-clockwise by phi about the z-axis.
func RotateZ(v Vec, phi float64) Vec {
	cos, sin := math.Cos(phi), math.Sin(phi)
	return Vec{
		cos*v[0] - sin*v[1],
		sin*v[0] + cos*v[1],
		v[2],
	}
}

// PointOnLineClosestTo returns the point on the line through p1 and p2
// closest to p0.
func PointOnLineClosestTo(p1, p2, p0 Vec) Vec {
	diff := p2.Sub(p1)
	t := -p1.Sub(p0).Dot(diff) / diff.Dot(diff)
	return p1.Add(diff.Scale(t))
}
