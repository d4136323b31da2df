package objects

import (
	"math"
	"testing"

	"github.com/san-kum/poolsim/internal/ptmath"
)

func TestMotionState(t *testing.T) {
	tests := []struct {
		s           MotionState
		str         string
		translating bool
		onTable     bool
	}{
		{Stationary, "stationary", false, true},
		{Spinning, "spinning", false, true},
		{Sliding, "sliding", true, true},
		{Rolling, "rolling", true, true},
		{Pocketed, "pocketed", false, false},
		{Airborne, "airborne", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if got := tt.s.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if got := tt.s.Translating(); got != tt.translating {
				t.Errorf("Translating() = %v, want %v", got, tt.translating)
			}
			if got := tt.s.OnTable(); got != tt.onTable {
				t.Errorf("OnTable() = %v, want %v", got, tt.onTable)
			}
		})
	}
}

func TestNewBallAt(t *testing.T) {
	p := DefaultBallParams()
	b := NewBallAt("7", 0.3, 1.1, p)

	if b.ID != "7" || b.State.S != Stationary {
		t.Errorf("ball = %+v", b)
	}
	// The ball rests on the cloth, center one radius up.
	if b.State.RVW.R != (ptmath.Vec{0.3, 1.1, p.R}) {
		t.Errorf("position = %v", b.State.RVW.R)
	}
}

func TestBall_CopyIsDeep(t *testing.T) {
	b := NewBallAt("cue", 0.5, 0.5, DefaultBallParams())
	b.History.Add(b.State)

	c := b.Copy()
	c.State.RVW.V = ptmath.Vec{3, 0, 0}
	c.History.Add(c.State)
	c.HistoryCts.Add(c.State)

	if !b.State.RVW.V.IsZero() {
		t.Error("copy shares state with the original")
	}
	if len(b.History.States) != 1 || len(b.HistoryCts.States) != 0 {
		t.Error("copy shares history with the original")
	}
}

func TestBall_SnapshotCopyDropsHistory(t *testing.T) {
	b := NewBallAt("cue", 0.5, 0.5, DefaultBallParams())
	b.History.Add(b.State)
	b.State.RVW.V = ptmath.Vec{1, 0, 0}

	s := b.SnapshotCopy()
	if !s.History.Empty() || !s.HistoryCts.Empty() {
		t.Error("snapshot carries history")
	}
	if s.State.RVW.V != b.State.RVW.V {
		t.Error("snapshot lost the current state")
	}
}

func TestBall_Energy(t *testing.T) {
	p := DefaultBallParams()
	b := NewBallAt("cue", 0.5, 0.5, p)

	if b.Energy() != 0 {
		t.Errorf("resting energy = %v", b.Energy())
	}

	b.State.RVW.V = ptmath.Vec{2, 0, 0}
	want := 0.5 * p.M * 4
	if got := b.Energy(); math.Abs(got-want) > 1e-12 {
		t.Errorf("translational energy = %v, want %v", got, want)
	}

	// Spin adds rotational energy on top.
	b.State.RVW.W = ptmath.Vec{0, 0, 20}
	if got := b.Energy(); got <= want {
		t.Errorf("energy with spin = %v, want more than %v", got, want)
	}
}

func TestBallHistory(t *testing.T) {
	var h BallHistory
	if !h.Empty() {
		t.Error("fresh history not empty")
	}
	if _, ok := h.Last(); ok {
		t.Error("empty history returned a last state")
	}

	h.Add(BallState{T: 0.5})
	h.Add(BallState{T: 1.25})

	last, ok := h.Last()
	if !ok || last.T != 1.25 {
		t.Errorf("last = %+v, ok = %v", last, ok)
	}
}
