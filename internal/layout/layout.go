// Package layout generates starting ball positions for the supported game
// types. Racks are described as blueprints: chains of translations in ball
// diameters relative to a table-normalized anchor point, with a set of ball
// ids allowed at each slot.
package layout

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/poolsim/internal/objects"
)

type dir int

const (
	left dir = iota
	right
	up
	down
	upLeft
	upRight
	downLeft
	downRight
)

// offsets are in ball diameters. Diagonals are the 60 degree diagonals of a
// triangular rack, not 45.
func (d dir) offsets() (dx, dy float64) {
	a := math.Sqrt(3)
	switch d {
	case left:
		return -2, 0
	case right:
		return 2, 0
	case up:
		return 0, 2
	case down:
		return 0, -2
	case upRight:
		return 1, a
	case downRight:
		return 1, -a
	case upLeft:
		return -1, a
	case downLeft:
		return -1, -a
	}
	return 0, 0
}

// slot is one ball position: an anchor in table-normalized coordinates, a
// chain of translations from it, and the ids permitted there.
type slot struct {
	anchorX, anchorY float64
	moves            []dir
	ids              []string
}

func from(prev slot, ids []string, moves ...dir) slot {
	s := slot{anchorX: prev.anchorX, anchorY: prev.anchorY, ids: ids}
	s.moves = append(s.moves, prev.moves...)
	s.moves = append(s.moves, moves...)
	return s
}

func at(x, y float64, ids ...string) slot {
	return slot{anchorX: x, anchorY: y, ids: ids}
}

// Options configure rack generation.
type Options struct {
	Params objects.BallParams

	// SpacingFactor jitters each ball within a disc of R*SpacingFactor, so
	// racked balls don't start in exact contact.
	SpacingFactor float64

	// Seed fixes both the id assignment and the jitter. Zero means seed
	// from entropy.
	Seed int64
}

func DefaultOptions() Options {
	return Options{
		Params:        objects.DefaultBallParams(),
		SpacingFactor: 1e-3,
	}
}

func buildRack(blueprint []slot, table *objects.Table, opts Options) (map[string]*objects.Ball, error) {
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	radius := opts.Params.R * (1 + opts.SpacingFactor)

	available := make(map[string]bool)
	for _, s := range blueprint {
		for _, id := range s.ids {
			available[id] = true
		}
	}

	balls := make(map[string]*objects.Ball, len(blueprint))
	for _, s := range blueprint {
		x := s.anchorX * table.W
		y := s.anchorY * table.L
		for _, m := range s.moves {
			dx, dy := m.offsets()
			x += dx * radius
			y += dy * radius
		}

		// Jitter within the spacing disc.
		ang := 2 * math.Pi * rng.Float64()
		rad := opts.Params.R * opts.SpacingFactor * rng.Float64()
		x += rad * math.Cos(ang)
		y += rad * math.Sin(ang)

		var remaining []string
		for _, id := range s.ids {
			if available[id] {
				remaining = append(remaining, id)
			}
		}
		if len(remaining) == 0 {
			return nil, fmt.Errorf("rack blueprint unsatisfiable: no ball id left for slot")
		}
		id := remaining[rng.Intn(len(remaining))]
		available[id] = false

		balls[id] = objects.NewBallAt(id, x, y, opts.Params)
	}

	return balls, nil
}

// NineBallRack builds the diamond rack of nine-ball: 1 on the apex, 9 in
// the middle, the rest shuffled.
func NineBallRack(table *objects.Table, opts Options) (map[string]*objects.Ball, error) {
	others := []string{"2", "3", "4", "5", "6", "7", "8"}

	apex := at(0.5, 0.77, "1")
	r2a := from(apex, others, upLeft)
	r3a := from(r2a, others, upLeft)
	r4a := from(r3a, others, upRight)

	blueprint := []slot{
		apex,
		r2a, from(r2a, others, right),
		r3a, from(r3a, []string{"9"}, right), from(r3a, others, right, right),
		r4a, from(r4a, others, right),
		from(r4a, others, upRight),
		at(0.85, 0.23, "cue"),
	}
	return buildRack(blueprint, table, opts)
}

// EightBallRack builds the triangular eight-ball rack with the 8 in the
// center of the third row and alternating solid/stripe corners.
func EightBallRack(table *objects.Table, opts Options) (map[string]*objects.Ball, error) {
	stripes := []string{"9", "10", "11", "12", "13", "14", "15"}
	solids := []string{"1", "2", "3", "4", "5", "6", "7"}

	apex := at(0.5, 0.77, solids...)
	r2a := from(apex, stripes, upLeft)
	r3a := from(r2a, solids, upLeft)
	r4a := from(r3a, stripes, upLeft)
	r5a := from(r4a, solids, upLeft)

	blueprint := []slot{
		apex,
		r2a, from(r2a, solids, right),
		r3a, from(r3a, []string{"8"}, right), from(r3a, stripes, right, right),
		r4a, from(r4a, solids, right), from(r4a, stripes, right, right), from(r4a, solids, right, right, right),
		r5a, from(r5a, stripes, right), from(r5a, stripes, right, right),
		from(r5a, solids, right, right, right), from(r5a, stripes, right, right, right, right),
		at(0.6, 0.23, "cue"),
	}
	return buildRack(blueprint, table, opts)
}

// ThreeCushionRack places the three carom balls in the standard break
// position, white to break.
func ThreeCushionRack(table *objects.Table, opts Options) (map[string]*objects.Ball, error) {
	blueprint := []slot{
		at(0.62, 0.25, "white"),
		at(0.5, 0.25, "yellow"),
		at(0.5, 0.75, "red"),
	}
	return buildRack(blueprint, table, opts)
}

// SnookerRack places the six colors on their spots and the fifteen reds in
// a triangle behind the pink.
func SnookerRack(table *objects.Table, opts Options) (map[string]*objects.Ball, error) {
	blueprint := []slot{
		at(7.0/12.0, 0.2, "white"),
		at(0.333, 0.2, "yellow"),
		at(0.666, 0.2, "green"),
		at(0.5, 0.2, "brown"),
		at(0.5, 0.5, "blue"),
		at(0.5, 10.0/11.0, "black"),
		at(0.5, 0.75, "pink"),
	}

	reds := make([]string, 0, 15)
	for i := 1; i <= 15; i++ {
		reds = append(reds, fmt.Sprintf("red%d", i))
	}

	apex := at(0.5, 0.75)
	apex.ids = reds
	apex.moves = []dir{up}
	r2a := from(apex, reds, upLeft)
	r3a := from(r2a, reds, upLeft)
	r4a := from(r3a, reds, upLeft)
	r5a := from(r4a, reds, upLeft)

	blueprint = append(blueprint,
		apex,
		r2a, from(r2a, reds, right),
		r3a, from(r3a, reds, right), from(r3a, reds, right, right),
		r4a, from(r4a, reds, right), from(r4a, reds, right, right), from(r4a, reds, right, right, right),
		r5a, from(r5a, reds, right), from(r5a, reds, right, right),
		from(r5a, reds, right, right, right), from(r5a, reds, right, right, right, right),
	)
	return buildRack(blueprint, table, opts)
}

// Rack dispatches by game name: "eightball", "nineball", "threecushion" or
// "snooker".
func Rack(game string, table *objects.Table, opts Options) (map[string]*objects.Ball, error) {
	switch game {
	case "eightball":
		return EightBallRack(table, opts)
	case "nineball":
		return NineBallRack(table, opts)
	case "threecushion":
		return ThreeCushionRack(table, opts)
	case "snooker":
		return SnookerRack(table, opts)
	}
	return nil, fmt.Errorf("unknown game type %q", game)
}
