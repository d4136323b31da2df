package layout

import (
	"math"
	"testing"

	"github.com/san-kum/poolsim/internal/objects"
)

func seededOptions(seed int64) Options {
	opts := DefaultOptions()
	opts.Seed = seed
	return opts
}

func minSeparation(balls map[string]*objects.Ball) float64 {
	min := math.Inf(1)
	ids := make([]string, 0, len(balls))
	for id := range balls {
		ids = append(ids, id)
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			d := balls[ids[i]].State.RVW.R.Sub(balls[ids[j]].State.RVW.R).Norm()
			if d < min {
				min = d
			}
		}
	}
	return min
}

func TestRack_BallCounts(t *testing.T) {
	pocket := objects.NewPocketTable(objects.DefaultPocketTableSpecs())
	carom := objects.NewBilliardTable(objects.DefaultBilliardTableSpecs())

	tests := []struct {
		game  string
		table *objects.Table
		want  int
	}{
		{"nineball", pocket, 10},
		{"eightball", pocket, 16},
		{"threecushion", carom, 3},
		{"snooker", pocket, 22},
	}

	for _, tt := range tests {
		t.Run(tt.game, func(t *testing.T) {
			balls, err := Rack(tt.game, tt.table, seededOptions(1))
			if err != nil {
				t.Fatal(err)
			}
			if len(balls) != tt.want {
				t.Errorf("racked %d balls, want %d", len(balls), tt.want)
			}

			p := DefaultOptions().Params
			if sep := minSeparation(balls); sep < 2*p.R-1e-12 {
				t.Errorf("closest pair at %v, want at least one ball diameter", sep)
			}

			for id, b := range balls {
				if b.ID != id {
					t.Errorf("ball keyed %q carries id %q", id, b.ID)
				}
				if b.State.S != objects.Stationary {
					t.Errorf("racked ball %s starts %v, want stationary", id, b.State.S)
				}
			}
		})
	}
}

func TestRack_UnknownGame(t *testing.T) {
	table := objects.NewPocketTable(objects.DefaultPocketTableSpecs())
	if _, err := Rack("crokinole", table, seededOptions(1)); err == nil {
		t.Error("unknown game accepted")
	}
}

func TestNineBallRack_FixedSlots(t *testing.T) {
	table := objects.NewPocketTable(objects.DefaultPocketTableSpecs())
	balls, err := NineBallRack(table, seededOptions(3))
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "cue"} {
		if _, ok := balls[id]; !ok {
			t.Fatalf("rack is missing ball %s", id)
		}
	}

	// The 1 sits on the apex spot; jitter only moves it within its disc.
	p := DefaultOptions().Params
	one := balls["1"].State.RVW.R
	if math.Abs(one[0]-0.5*table.W) > p.R || math.Abs(one[1]-0.77*table.L) > p.R {
		t.Errorf("apex ball at (%v, %v), want near the foot spot", one[0], one[1])
	}

	// The cue ball starts behind the head string, away from the rack.
	cue := balls["cue"].State.RVW.R
	if cue[1] > 0.5*table.L {
		t.Errorf("cue ball at y=%v, want in the bottom half", cue[1])
	}
}

func TestRack_SeededDeterminism(t *testing.T) {
	table := objects.NewPocketTable(objects.DefaultPocketTableSpecs())

	a, err := NineBallRack(table, seededOptions(42))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NineBallRack(table, seededOptions(42))
	if err != nil {
		t.Fatal(err)
	}

	for id, ball := range a {
		if ball.State.RVW.R != b[id].State.RVW.R {
			t.Errorf("ball %s moved between identical seeds", id)
		}
	}

	c, err := NineBallRack(table, seededOptions(43))
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for id, ball := range a {
		if ball.State.RVW.R != c[id].State.RVW.R {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical racks")
	}
}
