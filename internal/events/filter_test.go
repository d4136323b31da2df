package events

import (
	"testing"

	"github.com/san-kum/poolsim/internal/objects"
)

func timeline() []Event {
	p := objects.DefaultBallParams()
	cue := objects.NewBallAt("cue", 0.2, 0.2, p)
	one := objects.NewBallAt("1", 0.6, 0.2, p)
	two := objects.NewBallAt("2", 1.0, 0.2, p)

	return []Event{
		NewNullEvent(0),
		NewBallBallCollision(cue, one, 0.1),
		NewSlidingRollingTransition(cue, 0.25),
		NewBallBallCollision(one, two, 0.4),
		NewRollingStationaryTransition(one, 0.9),
		NewNullEvent(1.2),
	}
}

func TestFilterBall(t *testing.T) {
	evs := timeline()

	tests := []struct {
		name string
		ids  []string
		want int
	}{
		{"cue only", []string{"cue"}, 2},
		{"shared ball", []string{"1"}, 3},
		{"two balls", []string{"cue", "2"}, 3},
		{"unknown ball", []string{"9"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterBall(evs, tt.ids...)
			if len(got) != tt.want {
				t.Errorf("kept %d events, want %d", len(got), tt.want)
			}
			for _, e := range got {
				found := false
				for _, id := range tt.ids {
					if e.InvolvesBall(id) {
						found = true
					}
				}
				if !found {
					t.Errorf("%v does not involve any of %v", e.String(), tt.ids)
				}
			}
		})
	}
}

func TestFilterType(t *testing.T) {
	evs := timeline()

	if got := FilterType(evs, BallBall); len(got) != 2 {
		t.Errorf("kept %d ball-ball events, want 2", len(got))
	}
	if got := FilterType(evs, None); len(got) != 2 {
		t.Errorf("kept %d null events, want 2", len(got))
	}
	if got := FilterType(evs, SlidingRolling, RollingStationary); len(got) != 2 {
		t.Errorf("kept %d transitions, want 2", len(got))
	}
	if got := FilterType(evs, BallPocket); len(got) != 0 {
		t.Errorf("kept %d pocket events, want 0", len(got))
	}
}

func TestFilterTime(t *testing.T) {
	evs := timeline()

	got := FilterTime(evs, 0.25)
	if len(got) != 3 {
		t.Fatalf("kept %d events, want 3", len(got))
	}

	// The cutoff is strict: the transition at exactly 0.25 is dropped.
	for _, e := range got {
		if e.Time <= 0.25 {
			t.Errorf("event at %v survived a cutoff at 0.25", e.Time)
		}
	}
}
