// Package physics provides the analytic equations of motion for billiard
// balls between events.
//
// Ball motion on the cloth decomposes into a chain of regimes, each with a
// closed-form solution:
//
//   - [EvolveSlideState]: sliding, relative surface velocity nonzero
//   - [EvolveRollState]: rolling without slipping
//   - [EvolvePerpendicularSpin]: spin about the vertical axis decaying alone
//   - [EvolveAirborneState]: ballistic flight after leaving the cloth
//
// [EvolveBallMotion] walks the full chain, handing off from sliding to
// rolling to spinning to rest as each regime's natural duration elapses.
//
// The resolve subpackage holds the collision and transition models that
// produce the outgoing state at each event.
package physics
