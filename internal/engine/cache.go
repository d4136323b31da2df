package engine

import (
	"math"
	"sort"

	"github.com/san-kum/poolsim/internal/events"
	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/ptmath"
)

// TransitionCache holds the next motion state transition for every ball.
// Transitions depend only on a ball's own state, so they are recomputed
// only for balls an event touched.
type TransitionCache struct {
	transitions map[string]events.Event
}

func NewTransitionCache(balls map[string]*objects.Ball) *TransitionCache {
	c := &TransitionCache{transitions: make(map[string]events.Event, len(balls))}
	for id, b := range balls {
		c.transitions[id] = nextTransition(b)
	}
	return c
}

// Next returns the soonest cached transition. Exact-time ties break by ball
// id; map iteration order would make identical shots diverge.
func (c *TransitionCache) Next() events.Event {
	ids := make([]string, 0, len(c.transitions))
	for id := range c.transitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best := events.NewInfiniteNullEvent()
	for _, id := range ids {
		if e := c.transitions[id]; e.Time < best.Time {
			best = e
		}
	}
	return best
}

// Update recomputes transitions for every ball agent of the event.
func (c *TransitionCache) Update(e events.Event, balls map[string]*objects.Ball) {
	for _, a := range e.Agents {
		if a.Type == events.BallAgent {
			c.transitions[a.ID] = nextTransition(balls[a.ID])
		}
	}
}

// nextTransition predicts when the ball leaves its current motion state.
// Airborne balls exit via a table collision, not a transition.
func nextTransition(b *objects.Ball) events.Event {
	p := b.Params
	st := b.State

	switch st.S {
	case objects.Stationary, objects.Pocketed, objects.Airborne:
		return events.NewInfiniteNullEvent()

	case objects.Spinning:
		dtauE := ptmath.SpinTime(st.RVW, p.R, p.USp(), p.G)
		return events.NewSpinningStationaryTransition(b, st.T+dtauE)

	case objects.Rolling:
		dtauESpin := ptmath.SpinTime(st.RVW, p.R, p.USp(), p.G)
		dtauERoll := ptmath.RollTime(st.RVW, p.UR, p.G)
		if dtauESpin > dtauERoll {
			return events.NewRollingSpinningTransition(b, st.T+dtauERoll)
		}
		return events.NewRollingStationaryTransition(b, st.T+dtauERoll)

	case objects.Sliding:
		dtauE := ptmath.SlideTime(st.RVW, p.R, p.US, p.G)
		return events.NewSlidingRollingTransition(b, st.T+dtauE)
	}

	return events.NewInfiniteNullEvent()
}

type pairKey [2]string

// CollisionCache stores computed collision times keyed by event type and
// object id pair. A cached time stays valid until an event changes the
// trajectory of a ball it involves; detection then only re-solves the
// invalidated pairs.
type CollisionCache struct {
	times map[events.EventType]map[pairKey]float64
}

func NewCollisionCache() *CollisionCache {
	return &CollisionCache{times: make(map[events.EventType]map[pairKey]float64)}
}

func (c *CollisionCache) table(t events.EventType) map[pairKey]float64 {
	m, ok := c.times[t]
	if !ok {
		m = make(map[pairKey]float64)
		c.times[t] = m
	}
	return m
}

func (c *CollisionCache) Size() int {
	var n int
	for _, m := range c.times {
		n += len(m)
	}
	return n
}

// ballIndices names which positions of a cached pair key hold ball ids, per
// event type. The second slot of a ball-ball key is a ball; everywhere else
// it is static geometry.
func ballIndices(t events.EventType) []int {
	switch t {
	case events.BallBall:
		return []int{0, 1}
	case events.BallLinearCushion, events.BallCircularCushion, events.BallPocket, events.BallTable:
		return []int{0}
	case events.StickBall:
		return []int{1}
	}
	return nil
}

// Invalidate drops every cached entry that involves a ball the event acted
// on.
func (c *CollisionCache) Invalidate(e events.Event) {
	invalid := make(map[string]bool)
	for _, idx := range ballIndices(e.Type) {
		if idx < len(e.Agents) {
			invalid[e.Agents[idx].ID] = true
		}
	}
	// Transition events carry their ball as the sole agent.
	if e.Type.IsTransition() && len(e.Agents) == 1 {
		invalid[e.Agents[0].ID] = true
	}
	if len(invalid) == 0 {
		return
	}

	for t, m := range c.times {
		indices := ballIndices(t)
		for key := range m {
			for _, idx := range indices {
				if invalid[key[idx]] {
					delete(m, key)
					break
				}
			}
		}
	}
}

func (k pairKey) less(o pairKey) bool {
	if k[0] != o[0] {
		return k[0] < o[0]
	}
	return k[1] < o[1]
}

// minEntry returns the pair with the smallest cached time for the type.
// Exact-time ties break by key order so event selection is deterministic.
func (c *CollisionCache) minEntry(t events.EventType) (pairKey, float64) {
	best := pairKey{}
	bestT := math.Inf(1)
	found := false
	for key, tm := range c.table(t) {
		if !found || tm < bestT || (tm == bestT && key.less(best)) {
			best, bestT = key, tm
			found = true
		}
	}
	if !found {
		return best, math.Inf(1)
	}
	return best, bestT
}
