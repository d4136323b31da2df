package resolve

import (
	"github.com/san-kum/poolsim/internal/events"
	"github.com/san-kum/poolsim/internal/objects"
)

// CanonicalTransition flips the ball's motion state label and zeroes the
// residual kinematic components that the ending state says must be zero.
// Evolution leaves them within float error of zero; forcing them exact
// keeps downstream detection from chasing phantom motion.
type CanonicalTransition struct{}

func (CanonicalTransition) Resolve(b *objects.Ball, t events.EventType) {
	_, end, ok := events.TransitionMotionStates(t)
	if !ok {
		return
	}

	b.State.S = end

	switch end {
	case objects.Spinning:
		b.State.RVW.V = [3]float64{}
		b.State.RVW.W[0] = 0
		b.State.RVW.W[1] = 0
	case objects.Stationary:
		b.State.RVW.V = [3]float64{}
		b.State.RVW.W = [3]float64{}
	}
}
