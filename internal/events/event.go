// Package events defines the timeline primitives of a simulated shot: typed
// events, the agents they act on, and before/after state snapshots.
package events

import (
	"fmt"
	"math"

	"github.com/san-kum/poolsim/internal/objects"
)

// EventType labels what happened at an instant of the simulation.
type EventType int

const (
	None EventType = iota
	BallBall
	BallLinearCushion
	BallCircularCushion
	BallPocket
	BallTable
	StickBall
	SpinningStationary
	RollingStationary
	RollingSpinning
	SlidingRolling
)

func (t EventType) String() string {
	switch t {
	case None:
		return "none"
	case BallBall:
		return "ball_ball"
	case BallLinearCushion:
		return "ball_linear_cushion"
	case BallCircularCushion:
		return "ball_circular_cushion"
	case BallPocket:
		return "ball_pocket"
	case BallTable:
		return "ball_table"
	case StickBall:
		return "stick_ball"
	case SpinningStationary:
		return "spinning_stationary"
	case RollingStationary:
		return "rolling_stationary"
	case RollingSpinning:
		return "rolling_spinning"
	case SlidingRolling:
		return "sliding_rolling"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// IsCollision reports whether the event involves more than one object.
func (t EventType) IsCollision() bool {
	switch t {
	case BallBall, BallLinearCushion, BallCircularCushion, BallPocket, BallTable, StickBall:
		return true
	}
	return false
}

// IsTransition reports whether the event is a single ball changing motion
// state.
func (t EventType) IsTransition() bool {
	switch t {
	case SpinningStationary, RollingStationary, RollingSpinning, SlidingRolling:
		return true
	}
	return false
}

// AgentType labels the kind of object participating in an event.
type AgentType int

const (
	NullAgent AgentType = iota
	CueAgent
	BallAgent
	PocketAgent
	LinearCushionAgent
	CircularCushionAgent
	TableAgent
)

func (t AgentType) String() string {
	switch t {
	case NullAgent:
		return "null"
	case CueAgent:
		return "cue"
	case BallAgent:
		return "ball"
	case PocketAgent:
		return "pocket"
	case LinearCushionAgent:
		return "linear_cushion"
	case CircularCushionAgent:
		return "circular_cushion"
	case TableAgent:
		return "table"
	default:
		return fmt.Sprintf("AgentType(%d)", int(t))
	}
}

// Agent is one participant of an event. For mutable objects (balls and
// pockets) the agent carries snapshots of the object immediately before and
// after resolution. Static geometry carries only its id.
type Agent struct {
	ID   string    `json:"id"`
	Type AgentType `json:"type"`

	InitialBall *objects.Ball `json:"initial_ball,omitempty"`
	FinalBall   *objects.Ball `json:"final_ball,omitempty"`

	InitialPocket *objects.Pocket `json:"initial_pocket,omitempty"`
	FinalPocket   *objects.Pocket `json:"final_pocket,omitempty"`
}

func NullAgentRef() Agent {
	return Agent{ID: "NA", Type: NullAgent}
}

func BallAgentRef(b *objects.Ball) Agent {
	return Agent{ID: b.ID, Type: BallAgent, InitialBall: b.SnapshotCopy()}
}

func CueAgentRef(c *objects.Cue) Agent {
	return Agent{ID: c.ID, Type: CueAgent}
}

func PocketAgentRef(p *objects.Pocket) Agent {
	cp := *p
	cp.Contains = append([]string(nil), p.Contains...)
	return Agent{ID: p.ID, Type: PocketAgent, InitialPocket: &cp}
}

func LinearCushionAgentRef(s *objects.LinearCushionSegment) Agent {
	return Agent{ID: s.ID, Type: LinearCushionAgent}
}

func CircularCushionAgentRef(s *objects.CircularCushionSegment) Agent {
	return Agent{ID: s.ID, Type: CircularCushionAgent}
}

func TableAgentRef() Agent {
	return Agent{ID: "table", Type: TableAgent}
}

// Event is a moment on the shot timeline: its type, the absolute time it
// occurs, and the agents involved in participant order.
type Event struct {
	Type   EventType `json:"type"`
	Time   float64   `json:"time"`
	Agents []Agent   `json:"agents"`
}

// BallIDs returns the ids of all ball agents in the event.
func (e *Event) BallIDs() []string {
	var ids []string
	for _, a := range e.Agents {
		if a.Type == BallAgent {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// InvolvesBall reports whether the ball participates in the event.
func (e *Event) InvolvesBall(id string) bool {
	for _, a := range e.Agents {
		if a.Type == BallAgent && a.ID == id {
			return true
		}
	}
	return false
}

func (e *Event) String() string {
	s := fmt.Sprintf("%s @ %.9f:", e.Type, e.Time)
	for _, a := range e.Agents {
		s += " " + a.ID
	}
	return s
}

// NewNullEvent marks a timeline instant with no participants. The simulation
// seeds the timeline with one at t=0 and terminates with one at the final
// time.
func NewNullEvent(t float64) Event {
	return Event{Type: None, Time: t, Agents: []Agent{NullAgentRef()}}
}

// NewInfiniteNullEvent is the sentinel "nothing will ever happen" event.
func NewInfiniteNullEvent() Event {
	return NewNullEvent(math.Inf(1))
}

func NewBallBallCollision(b1, b2 *objects.Ball, t float64) Event {
	return Event{
		Type:   BallBall,
		Time:   t,
		Agents: []Agent{BallAgentRef(b1), BallAgentRef(b2)},
	}
}

func NewBallLinearCushionCollision(b *objects.Ball, s *objects.LinearCushionSegment, t float64) Event {
	return Event{
		Type:   BallLinearCushion,
		Time:   t,
		Agents: []Agent{BallAgentRef(b), LinearCushionAgentRef(s)},
	}
}

func NewBallCircularCushionCollision(b *objects.Ball, s *objects.CircularCushionSegment, t float64) Event {
	return Event{
		Type:   BallCircularCushion,
		Time:   t,
		Agents: []Agent{BallAgentRef(b), CircularCushionAgentRef(s)},
	}
}

func NewBallPocketCollision(b *objects.Ball, p *objects.Pocket, t float64) Event {
	return Event{
		Type:   BallPocket,
		Time:   t,
		Agents: []Agent{BallAgentRef(b), PocketAgentRef(p)},
	}
}

func NewBallTableCollision(b *objects.Ball, t float64) Event {
	return Event{
		Type:   BallTable,
		Time:   t,
		Agents: []Agent{BallAgentRef(b), TableAgentRef()},
	}
}

func NewStickBallCollision(c *objects.Cue, b *objects.Ball, t float64) Event {
	return Event{
		Type:   StickBall,
		Time:   t,
		Agents: []Agent{CueAgentRef(c), BallAgentRef(b)},
	}
}

func NewSpinningStationaryTransition(b *objects.Ball, t float64) Event {
	return Event{Type: SpinningStationary, Time: t, Agents: []Agent{BallAgentRef(b)}}
}

func NewRollingStationaryTransition(b *objects.Ball, t float64) Event {
	return Event{Type: RollingStationary, Time: t, Agents: []Agent{BallAgentRef(b)}}
}

func NewRollingSpinningTransition(b *objects.Ball, t float64) Event {
	return Event{Type: RollingSpinning, Time: t, Agents: []Agent{BallAgentRef(b)}}
}

func NewSlidingRollingTransition(b *objects.Ball, t float64) Event {
	return Event{Type: SlidingRolling, Time: t, Agents: []Agent{BallAgentRef(b)}}
}

// TransitionMotionStates returns the start and end motion states of a
// transition event.
func TransitionMotionStates(t EventType) (from, to objects.MotionState, ok bool) {
	switch t {
	case SpinningStationary:
		return objects.Spinning, objects.Stationary, true
	case RollingStationary:
		return objects.Rolling, objects.Stationary, true
	case RollingSpinning:
		return objects.Rolling, objects.Spinning, true
	case SlidingRolling:
		return objects.Sliding, objects.Rolling, true
	}
	return 0, 0, false
}
