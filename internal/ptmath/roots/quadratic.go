package roots

import "math"

// Quadratic solves a*t^2 + b*t + c = 0.
//
// The root with larger magnitude is computed first from the half-discriminant
// and the second is derived from the root sum, avoiding catastrophic
// cancellation. Complex conjugate roots are returned when the discriminant is
// negative. A degenerate a == 0 falls back to the linear solution (returned
// twice); all-zero coefficients produce NaN, which callers must treat as "no
// physical root".
func Quadratic(a, b, c float64) (complex128, complex128) {
	if a == 0 {
		u := complex(-c/b, 0)
		return u, u
	}
	bp := b / 2
	delta := bp*bp - a*c
	if delta < 0 {
		s := math.Sqrt(-delta) / a
		re := -bp / a
		return complex(re, -s), complex(re, s)
	}
	u1 := (-bp - math.Sqrt(delta)) / a
	u2 := -u1 - b/a
	return complex(u1, 0), complex(u2, 0)
}

// SolveQuadratics solves a batch of quadratics, returning for each the
// smallest non-negative real root, or +Inf if none exists. The numerics are
// identical to calling Quadratic per equation.
func SolveQuadratics(ps [][3]float64) []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		r1, r2 := Quadratic(p[0], p[1], p[2])
		out[i] = SmallestPositiveReal([]complex128{r1, r2})
	}
	return out
}
