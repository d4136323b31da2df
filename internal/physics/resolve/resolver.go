// Package resolve maps each collision and transition class to a strategy
// that mutates the participating objects' states at the instant of the
// event. Strategies are swappable so alternative contact models can be
// plugged in without touching detection or the simulation loop.
package resolve

import (
	"github.com/san-kum/poolsim/internal/events"
	"github.com/san-kum/poolsim/internal/objects"
)

type BallBallStrategy interface {
	Resolve(b1, b2 *objects.Ball)
}

type BallLinearCushionStrategy interface {
	Resolve(b *objects.Ball, s *objects.LinearCushionSegment)
}

type BallCircularCushionStrategy interface {
	Resolve(b *objects.Ball, s *objects.CircularCushionSegment)
}

type BallPocketStrategy interface {
	Resolve(b *objects.Ball, p *objects.Pocket)
}

type BallTableStrategy interface {
	Resolve(b *objects.Ball)
}

type StickBallStrategy interface {
	Resolve(c *objects.Cue, b *objects.Ball)
}

type TransitionStrategy interface {
	Resolve(b *objects.Ball, t events.EventType)
}

// Resolver bundles one strategy per event class.
type Resolver struct {
	BallBall            BallBallStrategy
	BallLinearCushion   BallLinearCushionStrategy
	BallCircularCushion BallCircularCushionStrategy
	BallPocket          BallPocketStrategy
	BallTable           BallTableStrategy
	StickBall           StickBallStrategy
	Transition          TransitionStrategy
}

// Default returns the standard model set: frictionless elastic ball-ball
// contact, the Han (2005) cushion model, instantaneous point cue strikes,
// canonical pocketing and transitions, and a frictionless inelastic bounce.
func Default() *Resolver {
	return &Resolver{
		BallBall:            FrictionlessElastic{},
		BallLinearCushion:   Han2005Linear{},
		BallCircularCushion: Han2005Circular{},
		BallPocket:          CanonicalBallPocket{},
		BallTable:           NewFrictionlessInelastic(),
		StickBall:           InstantaneousPoint{EnglishThrottle: 1, JumpThreshold: DefaultJumpThreshold},
		Transition:          CanonicalTransition{},
	}
}
