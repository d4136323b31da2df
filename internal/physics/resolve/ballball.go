package resolve

import (
	"math"

	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/ptmath"
)

// FrictionlessElastic models ball-ball contact as a frictionless,
// instantaneous, perfectly elastic collision between equal masses. The
// relative velocity component along the line of centers transfers entirely
// to the struck ball; the tangential component stays with the incoming ball.
type FrictionlessElastic struct{}

func (FrictionlessElastic) Resolve(b1, b2 *objects.Ball) {
	rvw1 := b1.State.RVW
	rvw2 := b2.State.RVW
	R := b1.Params.R

	n := rvw2.R.Sub(rvw1.R).Unit()
	t := ptmath.RotateZ(n, math.Pi/2)

	// Float error accumulates during root finding, so the balls are nudged
	// along the line of centers until exactly non-intersecting.
	correction := 2*R - rvw2.R.Sub(rvw1.R).Norm() + ptmath.EpsSpace
	rvw2.R = rvw2.R.Add(n.Scale(correction / 2))
	rvw1.R = rvw1.R.Sub(n.Scale(correction / 2))

	v2 := rvw2.V
	vRel := rvw1.V.Sub(v2)
	vMag := vRel.Norm()
	beta := ptmath.AngleBetween(vRel, n)

	rvw1.V = t.Scale(vMag * math.Sin(beta)).Add(v2)
	rvw2.V = n.Scale(vMag * math.Cos(beta)).Add(v2)

	b1.State.RVW = rvw1
	b1.State.S = objects.Sliding
	b2.State.RVW = rvw2
	b2.State.S = objects.Sliding
}
