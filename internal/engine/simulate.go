package engine

import (
	"math"
	"sort"

	"github.com/san-kum/poolsim/internal/events"
	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/physics"
	"github.com/san-kum/poolsim/internal/physics/resolve"
	"github.com/san-kum/poolsim/internal/ptmath/roots"
	"github.com/san-kum/poolsim/internal/system"
)

// Options configure a simulation run.
type Options struct {
	// TFinal stops the run after the first event at or past this time. Zero
	// means run until motion ceases.
	TFinal float64

	// MaxEvents, when positive, caps the resolved event count; on reaching
	// the cap the balls are frozen in place and the run ends normally.
	MaxEvents int

	// Continuous populates densely sampled trajectories after simulation,
	// spaced Dt apart (default 0.01).
	Continuous bool
	Dt         float64

	Resolver *resolve.Resolver
}

type simulation struct {
	shot     *system.System
	resolver *resolve.Resolver
	opts     Options

	transitions *TransitionCache
	collisions  *CollisionCache
	numEvents   int
	done        bool
}

// Simulate runs the shot to completion in place and returns it. The shot
// must carry energy, either from moving balls or a cue with positive impact
// speed aimed at a ball.
func Simulate(shot *system.System, opts Options) *system.System {
	if opts.Resolver == nil {
		opts.Resolver = resolve.Default()
	}

	sim := &simulation{
		shot:        shot,
		resolver:    opts.Resolver,
		opts:        opts,
		transitions: NewTransitionCache(shot.Balls),
		collisions:  NewCollisionCache(),
	}

	shot.ResetHistory()
	shot.UpdateHistory(events.NewNullEvent(0))

	for !sim.done {
		e := sim.step()
		if !sim.done {
			sim.transitions.Update(e, shot.Balls)
			sim.collisions.Invalidate(e)
		}
	}

	if opts.Continuous {
		dt := opts.Dt
		if dt == 0 {
			dt = 0.01
		}
		Continuize(shot, dt)
	}

	return shot
}

func (sim *simulation) step() events.Event {
	e := sim.nextEvent()

	if math.IsInf(e.Time, 1) {
		sim.shot.UpdateHistory(events.NewNullEvent(sim.shot.T))
		sim.done = true
		return e
	}

	sim.evolveAll(e.Time - sim.shot.T)
	sim.resolveEvent(&e)
	sim.shot.UpdateHistory(e)

	if sim.opts.TFinal > 0 && sim.shot.T >= sim.opts.TFinal {
		sim.shot.UpdateHistory(events.NewNullEvent(sim.shot.T))
		sim.done = true
	}

	sim.numEvents++
	if sim.opts.MaxEvents > 0 && sim.numEvents >= sim.opts.MaxEvents {
		sim.shot.StopBalls()
		sim.shot.UpdateHistory(events.NewNullEvent(sim.shot.T))
		sim.done = true
	}

	return e
}

// nextEvent finds the soonest upcoming event. Transitions are checked
// before collisions and collisions replace them only at strictly earlier
// times, so a simultaneous transition wins the tie.
func (sim *simulation) nextEvent() events.Event {
	e := events.NewInfiniteNullEvent()

	// A cue strike can only start a shot.
	if sim.shot.T == 0 {
		if se := sim.nextStickBall(); se.Time < e.Time {
			e = se
		}
	}

	if te := sim.transitions.Next(); te.Time < e.Time {
		e = te
	}
	if ce := sim.nextBallBall(); ce.Time < e.Time {
		e = ce
	}
	if ce := sim.nextBallCircularCushion(); ce.Time < e.Time {
		e = ce
	}
	if ce := sim.nextBallLinearCushion(); ce.Time < e.Time {
		e = ce
	}
	if ce := sim.nextBallPocket(); ce.Time < e.Time {
		e = ce
	}
	if ce := sim.nextBallTable(); ce.Time < e.Time {
		e = ce
	}

	return e
}

func (sim *simulation) nextStickBall() events.Event {
	shot := sim.shot
	if shot.Cue == nil || shot.Cue.BallID == "" {
		return events.NewInfiniteNullEvent()
	}

	cache := sim.collisions.table(events.StickBall)
	key := pairKey{shot.Cue.ID, shot.Cue.BallID}

	t, ok := cache[key]
	if !ok {
		t = math.Inf(1)
		if shot.T == 0 && shot.Energy() == 0 && shot.Cue.V0 > 0 {
			t = 0
		}
		cache[key] = t
	}

	return events.NewStickBallCollision(shot.Cue, shot.Balls[shot.Cue.BallID], t)
}

// sortedBallIDs gives a deterministic iteration order; map order would make
// identical shots produce differently ordered (though physically identical)
// detection passes.
func (sim *simulation) sortedBallIDs() []string {
	ids := make([]string, 0, len(sim.shot.Balls))
	for id := range sim.shot.Balls {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (sim *simulation) nextBallBall() events.Event {
	shot := sim.shot
	cache := sim.collisions.table(events.BallBall)
	ids := sim.sortedBallIDs()

	var pairs []pairKey
	var coeffs [][5]float64

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			b1, b2 := shot.Balls[ids[i]], shot.Balls[ids[j]]
			key := pairKey{b1.ID, b2.ID}
			if _, ok := cache[key]; ok {
				continue
			}

			switch {
			case b1.State.S == objects.Pocketed || b2.State.S == objects.Pocketed:
				cache[key] = math.Inf(1)
			case nontranslating(b1.State.S) && nontranslating(b2.State.S):
				cache[key] = math.Inf(1)
			case b1.State.RVW.R.Sub(b2.State.RVW.R).Norm() < b1.Params.R+b2.Params.R:
				// Overlapping balls would yield an internal contact root;
				// treat the pair as locked until something separates them.
				cache[key] = math.Inf(1)
			case skipBallBallCollision(b1.State.RVW, b2.State.RVW, b1.State.S, b2.State.S, b1.Params.R, b2.Params.R):
				cache[key] = math.Inf(1)
			default:
				pairs = append(pairs, key)
				coeffs = append(coeffs, ballBallCollisionCoeffs(b1, b2))
			}
		}
	}

	if len(coeffs) > 0 {
		ts := roots.SolveQuartics(coeffs)
		for i, key := range pairs {
			cache[key] = shot.T + ts[i]
		}
	}

	key, t := sim.collisions.minEntry(events.BallBall)
	if math.IsInf(t, 1) {
		return events.NewInfiniteNullEvent()
	}
	return events.NewBallBallCollision(shot.Balls[key[0]], shot.Balls[key[1]], t)
}

func (sim *simulation) nextBallLinearCushion() events.Event {
	shot := sim.shot
	if len(shot.Table.Cushions.Linear) == 0 {
		return events.NewInfiniteNullEvent()
	}

	cache := sim.collisions.table(events.BallLinearCushion)

	for _, id := range sim.sortedBallIDs() {
		b := shot.Balls[id]
		for _, s := range shot.Table.Cushions.Linear {
			key := pairKey{b.ID, s.ID}
			if _, ok := cache[key]; ok {
				continue
			}
			if nontranslating(b.State.S) || b.State.S == objects.Airborne {
				cache[key] = math.Inf(1)
				continue
			}
			cache[key] = shot.T + ballLinearCushionCollisionTime(b, s)
		}
	}

	key, t := sim.collisions.minEntry(events.BallLinearCushion)
	if math.IsInf(t, 1) {
		return events.NewInfiniteNullEvent()
	}
	return events.NewBallLinearCushionCollision(shot.Balls[key[0]], findLinearCushion(shot.Table, key[1]), t)
}

func (sim *simulation) nextBallCircularCushion() events.Event {
	shot := sim.shot
	if len(shot.Table.Cushions.Circular) == 0 {
		return events.NewInfiniteNullEvent()
	}

	cache := sim.collisions.table(events.BallCircularCushion)

	var pairs []pairKey
	var coeffs [][5]float64

	for _, id := range sim.sortedBallIDs() {
		b := shot.Balls[id]
		for _, s := range shot.Table.Cushions.Circular {
			key := pairKey{b.ID, s.ID}
			if _, ok := cache[key]; ok {
				continue
			}
			if nontranslating(b.State.S) || b.State.S == objects.Airborne {
				cache[key] = math.Inf(1)
				continue
			}
			pairs = append(pairs, key)
			coeffs = append(coeffs, ballCircularCushionCollisionCoeffs(b, s))
		}
	}

	if len(coeffs) > 0 {
		ts := roots.SolveQuartics(coeffs)
		for i, key := range pairs {
			cache[key] = shot.T + ts[i]
		}
	}

	key, t := sim.collisions.minEntry(events.BallCircularCushion)
	if math.IsInf(t, 1) {
		return events.NewInfiniteNullEvent()
	}
	return events.NewBallCircularCushionCollision(shot.Balls[key[0]], findCircularCushion(shot.Table, key[1]), t)
}

func (sim *simulation) nextBallPocket() events.Event {
	shot := sim.shot
	if !shot.Table.HasPockets() {
		return events.NewInfiniteNullEvent()
	}

	cache := sim.collisions.table(events.BallPocket)

	var pairs []pairKey
	var coeffs [][5]float64

	for _, id := range sim.sortedBallIDs() {
		b := shot.Balls[id]
		for _, p := range shot.Table.Pockets {
			key := pairKey{b.ID, p.ID}
			if _, ok := cache[key]; ok {
				continue
			}
			switch {
			case nontranslating(b.State.S):
				cache[key] = math.Inf(1)
			case b.State.S == objects.Airborne:
				cache[key] = shot.T + airbornePocketCaptureTime(b, p)
			default:
				pairs = append(pairs, key)
				coeffs = append(coeffs, ballPocketCollisionCoeffs(b, p))
			}
		}
	}

	if len(coeffs) > 0 {
		ts := roots.SolveQuartics(coeffs)
		for i, key := range pairs {
			cache[key] = shot.T + ts[i]
		}
	}

	key, t := sim.collisions.minEntry(events.BallPocket)
	if math.IsInf(t, 1) {
		return events.NewInfiniteNullEvent()
	}
	return events.NewBallPocketCollision(shot.Balls[key[0]], shot.Table.Pockets[key[1]], t)
}

func (sim *simulation) nextBallTable() events.Event {
	shot := sim.shot
	cache := sim.collisions.table(events.BallTable)

	for _, id := range sim.sortedBallIDs() {
		b := shot.Balls[id]
		key := pairKey{b.ID, "table"}
		if _, ok := cache[key]; ok {
			continue
		}
		cache[key] = shot.T + ballTableCollisionTime(b)
	}

	key, t := sim.collisions.minEntry(events.BallTable)
	if math.IsInf(t, 1) {
		return events.NewInfiniteNullEvent()
	}
	return events.NewBallTableCollision(shot.Balls[key[0]], t)
}

// evolveAll advances every ball analytically by dt.
func (sim *simulation) evolveAll(dt float64) {
	shot := sim.shot
	for _, b := range shot.Balls {
		rvw, s := physics.EvolveBallMotion(b.State.S, b.State.RVW, b.Params, dt)
		b.State = objects.BallState{RVW: rvw, S: s, T: shot.T + dt}
	}
}

// resolveEvent dispatches the event to its strategy and fills the agents'
// final snapshots.
func (sim *simulation) resolveEvent(e *events.Event) {
	shot := sim.shot
	r := sim.resolver

	// Initial snapshots reflect the state at the event time, not at
	// detection time.
	for i := range e.Agents {
		a := &e.Agents[i]
		switch a.Type {
		case events.BallAgent:
			a.InitialBall = shot.Balls[a.ID].SnapshotCopy()
		case events.PocketAgent:
			cp := *shot.Table.Pockets[a.ID]
			cp.Contains = append([]string(nil), shot.Table.Pockets[a.ID].Contains...)
			a.InitialPocket = &cp
		}
	}

	switch e.Type {
	case events.BallBall:
		r.BallBall.Resolve(shot.Balls[e.Agents[0].ID], shot.Balls[e.Agents[1].ID])
	case events.BallLinearCushion:
		r.BallLinearCushion.Resolve(shot.Balls[e.Agents[0].ID], findLinearCushion(shot.Table, e.Agents[1].ID))
	case events.BallCircularCushion:
		r.BallCircularCushion.Resolve(shot.Balls[e.Agents[0].ID], findCircularCushion(shot.Table, e.Agents[1].ID))
	case events.BallPocket:
		r.BallPocket.Resolve(shot.Balls[e.Agents[0].ID], shot.Table.Pockets[e.Agents[1].ID])
	case events.BallTable:
		r.BallTable.Resolve(shot.Balls[e.Agents[0].ID])
	case events.StickBall:
		r.StickBall.Resolve(shot.Cue, shot.Balls[e.Agents[1].ID])
	default:
		if e.Type.IsTransition() {
			r.Transition.Resolve(shot.Balls[e.Agents[0].ID], e.Type)
		}
	}

	for i := range e.Agents {
		a := &e.Agents[i]
		switch a.Type {
		case events.BallAgent:
			b := shot.Balls[a.ID]
			b.State.T = e.Time
			a.FinalBall = b.SnapshotCopy()
		case events.PocketAgent:
			cp := *shot.Table.Pockets[a.ID]
			cp.Contains = append([]string(nil), shot.Table.Pockets[a.ID].Contains...)
			a.FinalPocket = &cp
		}
	}
}

func findLinearCushion(t *objects.Table, id string) *objects.LinearCushionSegment {
	for _, s := range t.Cushions.Linear {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func findCircularCushion(t *objects.Table, id string) *objects.CircularCushionSegment {
	for _, s := range t.Cushions.Circular {
		if s.ID == id {
			return s
		}
	}
	return nil
}
