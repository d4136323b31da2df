package roots

import "math"

const (
	// absOrRelCutoff splits root realness classification into two regimes.
	// Above this magnitude of the real component an absolute tolerance on
	// the imaginary component is used; below it, a relative one. Absolute
	// tolerance alone misclassifies roots near zero.
	absOrRelCutoff = 1e-3

	rtol = 1e-3
	atol = 1e-9
)

// SmallestPositiveReal returns the smallest non-negative real root from a
// set of complex roots, or +Inf if no such root exists.
//
// A root r with |real(r)| > absOrRelCutoff is considered real if
// |imag(r)| < atol. Below the cutoff it is considered real if
// |imag(r)|/|real(r)| < rtol, and at real(r) == 0 only if imag(r) == 0.
func SmallestPositiveReal(rs []complex128) float64 {
	min := math.Inf(1)

	for _, r := range rs {
		re := real(r)
		if re < 0 {
			continue
		}

		imagMag := math.Abs(imag(r))
		realMag := math.Abs(re)

		var isReal bool
		switch {
		case realMag > absOrRelCutoff:
			isReal = imagMag < atol
		case realMag > 0:
			isReal = imagMag/realMag < rtol
		default:
			isReal = imagMag == 0
		}

		if isReal && re < min {
			min = re
		}
	}

	return min
}
