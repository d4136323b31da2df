package roots

import (
	"math"
	"sort"
	"testing"
)

// expand builds quartic coefficients from four real roots.
func expand(r1, r2, r3, r4 float64) [5]float64 {
	e1 := r1 + r2 + r3 + r4
	e2 := r1*r2 + r1*r3 + r1*r4 + r2*r3 + r2*r4 + r3*r4
	e3 := r1*r2*r3 + r1*r2*r4 + r1*r3*r4 + r2*r3*r4
	e4 := r1 * r2 * r3 * r4
	return [5]float64{1, -e1, e2, -e3, e4}
}

func sortedReals(rs [4]complex128) []float64 {
	out := make([]float64, 0, 4)
	for _, r := range rs {
		if math.Abs(imag(r)) < 1e-6 {
			out = append(out, real(r))
		}
	}
	sort.Float64s(out)
	return out
}

func TestQuartic_KnownRealRoots(t *testing.T) {
	tests := []struct {
		name  string
		roots [4]float64
	}{
		{"distinct", [4]float64{-3, -1, 2, 5}},
		{"small magnitudes", [4]float64{0.001, 0.02, 0.5, 1.7}},
		{"mixed scales", [4]float64{-100, -0.01, 0.01, 100}},
		{"near-degenerate pair", [4]float64{1, 1.000001, 3, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.roots[:]
			sort.Float64s(want)

			got := sortedReals(Quartic(expand(tt.roots[0], tt.roots[1], tt.roots[2], tt.roots[3])))
			if len(got) != 4 {
				t.Fatalf("found %d real roots, want 4: %v", len(got), got)
			}
			for i := range want {
				scale := math.Max(1, math.Abs(want[i]))
				if math.Abs(got[i]-want[i]) > 1e-6*scale {
					t.Errorf("root %d = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestQuartic_ComplexRoots(t *testing.T) {
	// (x^2 + 1)(x - 2)(x - 3) = x^4 - 5x^3 + 7x^2 - 5x + 6
	got := Quartic([5]float64{1, -5, 7, -5, 6})

	reals := sortedReals(got)
	if len(reals) != 2 {
		t.Fatalf("found %d real roots, want 2: %v", len(reals), got)
	}
	if math.Abs(reals[0]-2) > 1e-8 || math.Abs(reals[1]-3) > 1e-8 {
		t.Errorf("real roots = %v, want [2 3]", reals)
	}

	for _, r := range got {
		if math.Abs(imag(r)) > 1e-6 {
			if math.Abs(math.Abs(imag(r))-1) > 1e-8 || math.Abs(real(r)) > 1e-8 {
				t.Errorf("complex root = %v, want +-i", r)
			}
		}
	}
}

func TestQuartic_ZeroLeadingCoefficient(t *testing.T) {
	got := Quartic([5]float64{0, 1, 2, 3, 4})
	for _, r := range got {
		if r != 0 {
			t.Fatalf("degenerate quartic should return zero roots, got %v", got)
		}
	}
}

func TestQuartic_ResidualIsSmall(t *testing.T) {
	// Coefficients shaped like a ball-ball detection polynomial.
	coeff := [5]float64{0.24, -1.3, 2.1, -0.04, -0.007}

	for _, r := range Quartic(coeff) {
		var p complex128
		for _, c := range coeff {
			p = p*r + complex(c, 0)
		}
		scale := math.Max(1, math.Pow(abs(r), 4))
		if abs(p)/scale > 1e-8 {
			t.Errorf("residual at root %v is %v", r, abs(p))
		}
	}
}

func abs(z complex128) float64 {
	return math.Hypot(real(z), imag(z))
}

func TestSolveQuartics_MatchesScalar(t *testing.T) {
	ps := [][5]float64{
		expand(-1, 0.5, 2, 4),
		{1, -5, 7, -5, 6},
		{1, 0, 0, 0, 16}, // no real roots
	}

	got := SolveQuartics(ps)
	if len(got) != len(ps) {
		t.Fatalf("got %d results, want %d", len(got), len(ps))
	}

	for i, p := range ps {
		roots := Quartic(p)
		want := SmallestPositiveReal(roots[:])
		if got[i] != want && !(math.IsInf(got[i], 1) && math.IsInf(want, 1)) {
			t.Errorf("poly %d: batch %v, scalar %v", i, got[i], want)
		}
	}

	if math.Abs(got[0]-0.5) > 1e-6 {
		t.Errorf("smallest positive root = %v, want 0.5", got[0])
	}
	if !math.IsInf(got[2], 1) {
		t.Errorf("quartic with no real roots should give +Inf, got %v", got[2])
	}
}
