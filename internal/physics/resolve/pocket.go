package resolve

import (
	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/ptmath"
)

// CanonicalBallPocket drops the ball to the bottom of the pocket and removes
// it from play.
type CanonicalBallPocket struct{}

func (CanonicalBallPocket) Resolve(b *objects.Ball, p *objects.Pocket) {
	b.State.RVW = ptmath.RVW{
		R: ptmath.Vec{p.Center[0], p.Center[1], -p.Depth},
	}
	b.State.S = objects.Pocketed
	p.Add(b.ID)
}
