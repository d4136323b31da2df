package system

import (
	"math"
	"testing"

	"github.com/san-kum/poolsim/internal/events"
	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/ptmath"
)

func twoBallSystem(t *testing.T) *System {
	t.Helper()

	p := objects.DefaultBallParams()
	table := objects.NewBilliardTable(objects.DefaultBilliardTableSpecs())

	cue := objects.NewCue()
	cue.BallID = "cue"

	balls := map[string]*objects.Ball{
		"cue": objects.NewBallAt("cue", 0.5, 0.5, p),
		"1":   objects.NewBallAt("1", 0.5, 1.5, p),
	}

	s, err := New(table, cue, balls)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNew_Validation(t *testing.T) {
	p := objects.DefaultBallParams()
	table := objects.NewBilliardTable(objects.DefaultBilliardTableSpecs())

	t.Run("mismatched ball key", func(t *testing.T) {
		balls := map[string]*objects.Ball{"x": objects.NewBallAt("y", 0.5, 0.5, p)}
		if _, err := New(table, nil, balls); err == nil {
			t.Error("mismatched key accepted")
		}
	})

	t.Run("cue targets a missing ball", func(t *testing.T) {
		cue := objects.NewCue()
		cue.BallID = "ghost"
		balls := map[string]*objects.Ball{"cue": objects.NewBallAt("cue", 0.5, 0.5, p)}
		if _, err := New(table, cue, balls); err == nil {
			t.Error("dangling cue target accepted")
		}
	})

	t.Run("no cue is fine", func(t *testing.T) {
		balls := map[string]*objects.Ball{"cue": objects.NewBallAt("cue", 0.5, 0.5, p)}
		if _, err := New(table, nil, balls); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestStrike_Validation(t *testing.T) {
	tests := []struct {
		name    string
		v0      float64
		a, b    float64
		wantErr bool
	}{
		{"center hit", 2, 0, 0, false},
		{"draw shot", 3, 0, -0.4, false},
		{"zero speed", 0, 0, 0, true},
		{"negative speed", -1, 0, 0, true},
		{"tip off the ball", 2, 0.8, 0.7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := twoBallSystem(t)
			err := s.Strike(tt.v0, 90, 0, tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if err == nil && s.Cue.V0 != tt.v0 {
				t.Errorf("cue V0 = %v, want %v", s.Cue.V0, tt.v0)
			}
		})
	}
}

func TestAimAtBall(t *testing.T) {
	s := twoBallSystem(t)

	// The object ball sits straight up the table from the cue ball.
	if err := s.AimAtBall("1", 0); err != nil {
		t.Fatal(err)
	}
	if math.Abs(s.Cue.Phi-90) > 1e-9 {
		t.Errorf("phi = %v, want 90", s.Cue.Phi)
	}

	// Cutting right swings the aim clockwise, cutting left the other way.
	if err := s.AimAtBall("1", 30); err != nil {
		t.Fatal(err)
	}
	right := s.Cue.Phi
	if right >= 90 {
		t.Errorf("right cut phi = %v, want < 90", right)
	}

	if err := s.AimAtBall("1", -30); err != nil {
		t.Fatal(err)
	}
	left := s.Cue.Phi
	if left <= 90 {
		t.Errorf("left cut phi = %v, want > 90", left)
	}
	if math.Abs((left-90)-(90-right)) > 1e-6 {
		t.Errorf("cuts not symmetric: left %v, right %v", left, right)
	}

	if err := s.AimAtBall("ghost", 0); err == nil {
		t.Error("aiming at a missing ball accepted")
	}
	if err := s.AimAtBall("1", 95); err == nil {
		t.Error("out-of-range cut accepted")
	}
}

func TestCopy_Independence(t *testing.T) {
	s := twoBallSystem(t)
	s.UpdateHistory(events.NewNullEvent(0))

	c := s.Copy()
	c.Balls["cue"].State.RVW.V = ptmath.Vec{5, 0, 0}
	c.Balls["cue"].State.S = objects.Sliding
	c.T = 3
	c.Events = append(c.Events, events.NewNullEvent(3))

	if !s.Balls["cue"].State.RVW.V.IsZero() {
		t.Error("copy shares ball state with the original")
	}
	if s.T != 0 || len(s.Events) != 1 {
		t.Error("copy shares timeline with the original")
	}
}

func TestUpdateHistoryAndReset(t *testing.T) {
	s := twoBallSystem(t)

	s.UpdateHistory(events.NewNullEvent(0))
	s.Balls["cue"].State.RVW.V = ptmath.Vec{1, 0, 0}
	s.Balls["cue"].State.S = objects.Sliding
	s.UpdateHistory(events.NewNullEvent(0.5))

	if s.T != 0.5 || len(s.Events) != 2 {
		t.Fatalf("T = %v, events = %d", s.T, len(s.Events))
	}
	if n := len(s.Balls["cue"].History.States); n != 2 {
		t.Fatalf("cue history has %d states, want 2", n)
	}
	if !s.Simulated() {
		t.Error("timeline ending in a late null event should count as simulated")
	}

	// Reset rewinds to the first recorded state and clears everything.
	s.Reset()
	if s.T != 0 || s.Events != nil {
		t.Error("reset left timeline state behind")
	}
	if !s.Balls["cue"].State.RVW.V.IsZero() || s.Balls["cue"].State.S != objects.Stationary {
		t.Error("reset did not rewind the cue ball")
	}
	if len(s.Balls["cue"].History.States) != 0 {
		t.Error("reset left ball history behind")
	}
}

func TestBallsOverlapping(t *testing.T) {
	p := objects.DefaultBallParams()
	s := twoBallSystem(t)

	if s.BallsOverlapping() {
		t.Error("separated balls reported overlapping")
	}

	s.Balls["1"].State.RVW.R = ptmath.Vec{0.5 + 1.5*p.R, 0.5, p.R}
	if !s.BallsOverlapping() {
		t.Error("intersecting balls not reported")
	}

	// Pocketed balls are out of play and never overlap.
	s.Balls["1"].State.S = objects.Pocketed
	if s.BallsOverlapping() {
		t.Error("pocketed ball counted as overlapping")
	}
}

func TestEnergy(t *testing.T) {
	s := twoBallSystem(t)
	if s.Energy() != 0 {
		t.Errorf("resting system energy = %v, want 0", s.Energy())
	}

	p := objects.DefaultBallParams()
	s.Balls["cue"].State.RVW.V = ptmath.Vec{2, 0, 0}
	s.Balls["cue"].State.S = objects.Sliding

	want := 0.5 * p.M * 4
	if got := s.Energy(); math.Abs(got-want) > 1e-12 {
		t.Errorf("energy = %v, want %v", got, want)
	}
}
