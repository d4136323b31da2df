package resolve

import (
	"github.com/san-kum/poolsim/internal/objects"
)

// FrictionlessInelastic bounces an airborne ball off the cloth, damping only
// the vertical velocity component by the table's coefficient of restitution.
// Once the projected bounce apex falls below MinBounceHeight the vertical
// velocity is zeroed and the ball rejoins the sliding regime.
type FrictionlessInelastic struct {
	MinBounceHeight float64
}

func NewFrictionlessInelastic() FrictionlessInelastic {
	return FrictionlessInelastic{MinBounceHeight: 0.005}
}

func (m FrictionlessInelastic) Resolve(b *objects.Ball) {
	vz := -b.State.RVW.V[2] * b.Params.ET

	bounceHeight := 0.5 * vz * vz / b.Params.G
	if bounceHeight < m.MinBounceHeight {
		b.State.RVW.V[2] = 0
		b.State.RVW.R[2] = b.Params.R
		b.State.S = objects.Sliding
		return
	}

	b.State.RVW.V[2] = vz
	b.State.RVW.R[2] = b.Params.R
	b.State.S = objects.Airborne
}
