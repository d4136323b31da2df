// Package system ties a table, a cue and a set of balls together with the
// event timeline produced by simulating them.
package system

import (
	"fmt"
	"math"

	"github.com/san-kum/poolsim/internal/events"
	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/ptmath"
)

// System is the complete state of a shot: static geometry, mutable balls,
// the cue, the running clock and the accumulated event list.
type System struct {
	T      float64                  `json:"t"`
	Table  *objects.Table           `json:"table"`
	Cue    *objects.Cue             `json:"cue"`
	Balls  map[string]*objects.Ball `json:"balls"`
	Events []events.Event           `json:"events"`
}

// New assembles a system and validates that ball ids are consistent and the
// cue targets a ball that exists.
func New(table *objects.Table, cue *objects.Cue, balls map[string]*objects.Ball) (*System, error) {
	for id, b := range balls {
		if id != b.ID {
			return nil, fmt.Errorf("ball key %q does not match ball id %q", id, b.ID)
		}
	}
	if cue != nil && cue.BallID != "" {
		if _, ok := balls[cue.BallID]; !ok {
			return nil, fmt.Errorf("cue targets unknown ball %q", cue.BallID)
		}
	}
	return &System{
		Table: table,
		Cue:   cue,
		Balls: balls,
	}, nil
}

// Copy deep-copies the system.
func (s *System) Copy() *System {
	c := &System{
		T:      s.T,
		Events: append([]events.Event(nil), s.Events...),
	}
	if s.Table != nil {
		c.Table = s.Table.Copy()
	}
	if s.Cue != nil {
		c.Cue = s.Cue.Copy()
	}
	c.Balls = make(map[string]*objects.Ball, len(s.Balls))
	for id, b := range s.Balls {
		c.Balls[id] = b.Copy()
	}
	return c
}

// Simulated reports whether the system has been run to completion. The
// timeline of a finished shot always ends with a null event.
func (s *System) Simulated() bool {
	n := len(s.Events)
	return n > 0 && s.Events[n-1].Type == events.None && s.Events[n-1].Time > 0
}

// Continuized reports whether densely sampled trajectories exist.
func (s *System) Continuized() bool {
	for _, b := range s.Balls {
		if !b.HistoryCts.Empty() {
			return true
		}
	}
	return false
}

// Energy sums the kinetic and rotational energy over all balls.
func (s *System) Energy() float64 {
	var e float64
	for _, b := range s.Balls {
		e += b.Energy()
	}
	return e
}

// BallsOverlapping reports whether any on-table pair intersects beyond
// float tolerance.
func (s *System) BallsOverlapping() bool {
	ids := make([]string, 0, len(s.Balls))
	for id := range s.Balls {
		ids = append(ids, id)
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			b1, b2 := s.Balls[ids[i]], s.Balls[ids[j]]
			if !b1.State.S.OnTable() || !b2.State.S.OnTable() {
				continue
			}
			d := b1.State.RVW.R.Sub(b2.State.RVW.R).Norm()
			if d < b1.Params.R+b2.Params.R-ptmath.Eps {
				return true
			}
		}
	}
	return false
}

// StopBalls freezes every ball in place, zeroing all motion.
func (s *System) StopBalls() {
	for _, b := range s.Balls {
		if b.State.S == objects.Pocketed {
			continue
		}
		b.State.RVW.V = [3]float64{}
		b.State.RVW.W = [3]float64{}
		b.State.S = objects.Stationary
	}
}

// ResetHistory clears the timeline and all ball histories, rewinding the
// clock to zero while keeping current ball positions.
func (s *System) ResetHistory() {
	s.T = 0
	s.Events = nil
	for _, b := range s.Balls {
		b.History = objects.BallHistory{}
		b.HistoryCts = objects.BallHistory{}
		b.State.T = 0
	}
}

// Reset rewinds every ball to its first recorded state and clears the
// timeline, so the same shot can be re-simulated.
func (s *System) Reset() {
	for _, b := range s.Balls {
		if len(b.History.States) > 0 {
			b.State = b.History.States[0]
		}
	}
	s.ResetHistory()
	for _, p := range s.Table.Pockets {
		p.Contains = nil
	}
}

// UpdateHistory appends the event to the timeline and snapshots every ball
// at the event time.
func (s *System) UpdateHistory(e events.Event) {
	s.T = e.Time
	for _, b := range s.Balls {
		b.State.T = e.Time
		b.History.Add(b.State)
	}
	s.Events = append(s.Events, e)
}

// Strike sets the cue strike parameters and validates them. V0 must be
// positive and the tip offset must stay on the tip-reachable cap of the
// ball.
func (s *System) Strike(v0, phi, theta, a, b float64) error {
	if s.Cue == nil {
		return fmt.Errorf("system has no cue")
	}
	if s.Cue.BallID == "" {
		return fmt.Errorf("cue has no target ball")
	}
	if _, ok := s.Balls[s.Cue.BallID]; !ok {
		return fmt.Errorf("cue targets unknown ball %q", s.Cue.BallID)
	}
	if v0 <= 0 {
		return fmt.Errorf("strike speed must be positive, got %v", v0)
	}
	if a*a+b*b >= 1 {
		return fmt.Errorf("tip offset (%v, %v) is off the ball", a, b)
	}
	s.Cue.V0 = v0
	s.Cue.Phi = phi
	s.Cue.Theta = theta
	s.Cue.A = a
	s.Cue.B = b
	return nil
}

// AimAtBall points the cue ball at the center of another ball, optionally
// cutting the shot by cut degrees (positive cuts to the left).
func (s *System) AimAtBall(targetID string, cut float64) error {
	if s.Cue == nil || s.Cue.BallID == "" {
		return fmt.Errorf("cue has no target ball")
	}
	cueBall, ok := s.Balls[s.Cue.BallID]
	if !ok {
		return fmt.Errorf("cue targets unknown ball %q", s.Cue.BallID)
	}
	obj, ok := s.Balls[targetID]
	if !ok {
		return fmt.Errorf("no ball %q to aim at", targetID)
	}

	d := obj.State.RVW.R.Sub(cueBall.State.RVW.R)
	phi := ptmath.Angle(d) * 180 / math.Pi

	if cut != 0 {
		if cut > 89 || cut < -89 {
			return fmt.Errorf("cut angle %v out of range [-89, 89]", cut)
		}
		// Solve for the aiming angle that makes the line of centers at
		// contact deviate from the aim line by the cut angle.
		left := cut < 0
		cutRad := math.Abs(cut) * math.Pi / 180
		R := obj.Params.R
		dMag := d.Norm()
		lower := 0.0
		upper := math.Pi / 2
		for i := 0; i < 100; i++ {
			mid := (lower + upper) / 2
			sinPsi := 2 * R * math.Sin(mid) / dMag
			if sinPsi > 1 {
				upper = mid
				continue
			}
			// Angle between aim line and line of centers at contact.
			if mid-math.Asin(sinPsi) < cutRad {
				lower = mid
			} else {
				upper = mid
			}
		}
		delta := (lower + upper) / 2 * 180 / math.Pi
		if left {
			phi += delta
		} else {
			phi -= delta
		}
	}

	s.Cue.Phi = math.Mod(phi+360, 360)
	return nil
}
