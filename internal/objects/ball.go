package objects

import (
	"fmt"

	"github.com/san-kum/poolsim/internal/ptmath"
)

// MotionState labels the closed-form trajectory a ball is currently on.
type MotionState int

const (
	Stationary MotionState = iota
	Spinning
	Sliding
	Rolling
	Pocketed
	Airborne
)

func (s MotionState) String() string {
	switch s {
	case Stationary:
		return "stationary"
	case Spinning:
		return "spinning"
	case Sliding:
		return "sliding"
	case Rolling:
		return "rolling"
	case Pocketed:
		return "pocketed"
	case Airborne:
		return "airborne"
	default:
		return fmt.Sprintf("MotionState(%d)", int(s))
	}
}

// Translating reports whether the ball's center is moving across the table.
func (s MotionState) Translating() bool {
	return s == Sliding || s == Rolling || s == Airborne
}

// OnTable reports whether the ball still participates in play.
func (s MotionState) OnTable() bool {
	return s != Pocketed
}

// BallParams holds the physical constants of a ball. Not every parameter is
// used by every resolution model. Defaults follow measured pool ball values.
type BallParams struct {
	M                  float64 `json:"m" yaml:"m"`
	R                  float64 `json:"R" yaml:"radius"`
	US                 float64 `json:"u_s" yaml:"u_s"`
	UR                 float64 `json:"u_r" yaml:"u_r"`
	USpProportionality float64 `json:"u_sp_proportionality" yaml:"u_sp_proportionality"`
	UB                 float64 `json:"u_b" yaml:"u_b"`
	EB                 float64 `json:"e_b" yaml:"e_b"`
	EC                 float64 `json:"e_c" yaml:"e_c"`
	FC                 float64 `json:"f_c" yaml:"f_c"`
	ET                 float64 `json:"e_t" yaml:"e_t"`
	G                  float64 `json:"g" yaml:"g"`
}

// USp is the coefficient of spinning friction, proportional to the radius.
func (p BallParams) USp() float64 {
	return p.USpProportionality * p.R
}

func DefaultBallParams() BallParams {
	return BallParams{
		M:                  0.170097,
		R:                  0.028575,
		US:                 0.2,
		UR:                 0.01,
		USpProportionality: 10.0 * 2.0 / 5.0 / 9.0,
		UB:                 0.05,
		EB:                 0.95,
		EC:                 0.85,
		FC:                 0.2,
		ET:                 0.5,
		G:                  9.81,
	}
}

// SnookerBallParams returns constants for snooker-sized balls.
func SnookerBallParams() BallParams {
	p := DefaultBallParams()
	p.M = 0.140
	p.R = 0.02619375
	p.US = 0.5
	p.FC = 0.5
	return p
}

// BilliardBallParams returns constants for carom (three-cushion) balls.
func BilliardBallParams() BallParams {
	p := DefaultBallParams()
	p.M = 0.210
	p.R = 0.0615 / 2
	p.FC = 0.15
	return p
}

// BallState is a ball's kinematic block, motion state label and the
// simulation time the block is valid for.
type BallState struct {
	RVW ptmath.RVW  `json:"rvw"`
	S   MotionState `json:"s"`
	T   float64     `json:"t"`
}

// BallHistory is an ordered sequence of state snapshots.
type BallHistory struct {
	States []BallState `json:"states"`
}

func (h *BallHistory) Add(s BallState) {
	h.States = append(h.States, s)
}

func (h *BallHistory) Empty() bool {
	return len(h.States) == 0
}

func (h *BallHistory) Last() (BallState, bool) {
	if len(h.States) == 0 {
		return BallState{}, false
	}
	return h.States[len(h.States)-1], true
}

// Ball is a single simulated ball. State mutates during simulation; History
// records the state at each event and HistoryCts the densely sampled
// trajectory after continuization.
type Ball struct {
	ID         string      `json:"id"`
	Params     BallParams  `json:"params"`
	State      BallState   `json:"state"`
	History    BallHistory `json:"history"`
	HistoryCts BallHistory `json:"history_cts"`
}

// NewBall creates a stationary ball at the origin with default parameters.
func NewBall(id string) *Ball {
	return &Ball{
		ID:     id,
		Params: DefaultBallParams(),
		State:  BallState{S: Stationary},
	}
}

// NewBallAt creates a stationary ball resting at (x, y) on the cloth.
func NewBallAt(id string, x, y float64, params BallParams) *Ball {
	return &Ball{
		ID:     id,
		Params: params,
		State: BallState{
			RVW: ptmath.RVW{R: ptmath.Vec{x, y, params.R}},
			S:   Stationary,
		},
	}
}

// Copy returns a deep copy, histories included.
func (b *Ball) Copy() *Ball {
	c := *b
	c.History.States = append([]BallState(nil), b.History.States...)
	c.HistoryCts.States = append([]BallState(nil), b.HistoryCts.States...)
	return &c
}

// SnapshotCopy returns a copy without histories, used for event agents.
func (b *Ball) SnapshotCopy() *Ball {
	c := *b
	c.History = BallHistory{}
	c.HistoryCts = BallHistory{}
	return &c
}

// Energy returns the ball's kinetic plus rotational energy.
func (b *Ball) Energy() float64 {
	return ptmath.BallEnergy(b.State.RVW, b.Params.R, b.Params.M)
}
