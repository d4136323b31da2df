package objects

import (
	"math"

	"github.com/san-kum/poolsim/internal/ptmath"
)

// CushionDirection selects which side(s) of a linear cushion segment are
// collidable. Most segments face the playing surface on one side only;
// checking both doubles the detection cost for no benefit.
type CushionDirection int

const (
	Side1 CushionDirection = iota
	Side2
	BothSides
)

// LinearCushionSegment is the straight cushion face between p1 and p2. The
// z-component of the endpoints is the cushion height.
type LinearCushionSegment struct {
	ID        string           `json:"id"`
	P1        ptmath.Vec       `json:"p1"`
	P2        ptmath.Vec       `json:"p2"`
	Direction CushionDirection `json:"direction"`
}

func (s *LinearCushionSegment) Height() float64 {
	return s.P1[2]
}

// Lx, Ly, L0 are the coefficients of the line lx*x + ly*y + l0 = 0 through
// the segment, projected onto the cloth.
func (s *LinearCushionSegment) Lx() float64 {
	if s.P2[0]-s.P1[0] == 0 {
		return 1
	}
	return -(s.P2[1] - s.P1[1]) / (s.P2[0] - s.P1[0])
}

func (s *LinearCushionSegment) Ly() float64 {
	if s.P2[0]-s.P1[0] == 0 {
		return 0
	}
	return 1
}

func (s *LinearCushionSegment) L0() float64 {
	if s.P2[0]-s.P1[0] == 0 {
		return -s.P1[0]
	}
	return (s.P2[1]-s.P1[1])/(s.P2[0]-s.P1[0])*s.P1[0] - s.P1[1]
}

// Normal returns the segment's unit normal. Its sign is arbitrary; resolvers
// orient it against the incoming velocity.
func (s *LinearCushionSegment) Normal() ptmath.Vec {
	return ptmath.Vec{s.Lx(), s.Ly(), 0}.Unit()
}

// CircularCushionSegment is a rounded jaw tip at the mouth of a pocket,
// modeled as a vertical cylinder.
type CircularCushionSegment struct {
	ID     string     `json:"id"`
	Center ptmath.Vec `json:"center"`
	Radius float64    `json:"radius"`
}

func (s *CircularCushionSegment) Height() float64 {
	return s.Center[2]
}

// Normal returns the outward unit normal at the ball's position.
func (s *CircularCushionSegment) Normal(r ptmath.Vec) ptmath.Vec {
	n := r.Sub(s.Center)
	n[2] = 0
	return n.Unit()
}

// Pocket is a capture region: a vertical cylinder of the given radius whose
// mouth is flush with the cloth.
type Pocket struct {
	ID       string     `json:"id"`
	Center   ptmath.Vec `json:"center"`
	Radius   float64    `json:"radius"`
	Depth    float64    `json:"depth"`
	Contains []string   `json:"contains"`
}

func (p *Pocket) Add(ballID string) {
	p.Contains = append(p.Contains, ballID)
}

func (p *Pocket) Remove(ballID string) {
	for i, id := range p.Contains {
		if id == ballID {
			p.Contains = append(p.Contains[:i], p.Contains[i+1:]...)
			return
		}
	}
}

// CushionSegments groups a table's cushion geometry by kind.
type CushionSegments struct {
	Linear   map[string]*LinearCushionSegment   `json:"linear"`
	Circular map[string]*CircularCushionSegment `json:"circular"`
}

// Table is the static playing geometry: the cloth plane plus cushion
// segments and pockets.
type Table struct {
	L        float64            `json:"l"`
	W        float64            `json:"w"`
	Cushions CushionSegments    `json:"cushions"`
	Pockets  map[string]*Pocket `json:"pockets"`
}

// Center returns the cloth-plane midpoint of the playing surface.
func (t *Table) Center() (x, y float64) {
	return t.W / 2, t.L / 2
}

// HasPockets reports whether any pocket exists (false for carom tables).
func (t *Table) HasPockets() bool {
	return len(t.Pockets) > 0
}

// Copy deep-copies the table. Cushion geometry is immutable during
// simulation but pocket contents are not.
func (t *Table) Copy() *Table {
	c := &Table{
		L: t.L,
		W: t.W,
		Cushions: CushionSegments{
			Linear:   make(map[string]*LinearCushionSegment, len(t.Cushions.Linear)),
			Circular: make(map[string]*CircularCushionSegment, len(t.Cushions.Circular)),
		},
		Pockets: make(map[string]*Pocket, len(t.Pockets)),
	}
	for id, s := range t.Cushions.Linear {
		seg := *s
		c.Cushions.Linear[id] = &seg
	}
	for id, s := range t.Cushions.Circular {
		seg := *s
		c.Cushions.Circular[id] = &seg
	}
	for id, p := range t.Pockets {
		pk := *p
		pk.Contains = append([]string(nil), p.Contains...)
		c.Pockets[id] = &pk
	}
	return c
}

// PocketTableSpecs parameterizes a six-pocket table. Defaults describe a
// 7-foot table with a 78x39 inch playing surface.
type PocketTableSpecs struct {
	L float64 `json:"l" yaml:"l"`
	W float64 `json:"w" yaml:"w"`

	CushionWidth       float64 `json:"cushion_width" yaml:"cushion_width"`
	CushionHeight      float64 `json:"cushion_height" yaml:"cushion_height"`
	CornerPocketWidth  float64 `json:"corner_pocket_width" yaml:"corner_pocket_width"`
	CornerPocketAngle  float64 `json:"corner_pocket_angle" yaml:"corner_pocket_angle"`
	CornerPocketDepth  float64 `json:"corner_pocket_depth" yaml:"corner_pocket_depth"`
	CornerPocketRadius float64 `json:"corner_pocket_radius" yaml:"corner_pocket_radius"`
	CornerJawRadius    float64 `json:"corner_jaw_radius" yaml:"corner_jaw_radius"`
	SidePocketWidth    float64 `json:"side_pocket_width" yaml:"side_pocket_width"`
	SidePocketAngle    float64 `json:"side_pocket_angle" yaml:"side_pocket_angle"`
	SidePocketDepth    float64 `json:"side_pocket_depth" yaml:"side_pocket_depth"`
	SidePocketRadius   float64 `json:"side_pocket_radius" yaml:"side_pocket_radius"`
	SideJawRadius      float64 `json:"side_jaw_radius" yaml:"side_jaw_radius"`
	PocketDepth        float64 `json:"pocket_depth" yaml:"pocket_depth"`
}

func DefaultPocketTableSpecs() PocketTableSpecs {
	return PocketTableSpecs{
		L:                  1.9812,
		W:                  1.9812 / 2,
		CushionWidth:       2 * 2.54 / 100,
		CushionHeight:      0.64 * 2 * 0.028575,
		CornerPocketWidth:  0.118,
		CornerPocketAngle:  5.3,
		CornerPocketDepth:  0.0398,
		CornerPocketRadius: 0.124 / 2,
		CornerJawRadius:    0.0419 / 2,
		SidePocketWidth:    0.137,
		SidePocketAngle:    7.14,
		SidePocketDepth:    0.00437,
		SidePocketRadius:   0.129 / 2,
		SideJawRadius:      0.0159 / 2,
		PocketDepth:        0.08,
	}
}

// SnookerTableSpecs parameterizes a snooker table with the pocket-table
// geometry but snooker dimensions.
func SnookerTableSpecs() PocketTableSpecs {
	return PocketTableSpecs{
		L:                  3.566,
		W:                  1.770,
		CushionWidth:       2 * 25.4 / 1000,
		CushionHeight:      0.04,
		CornerPocketWidth:  0.083,
		CornerPocketAngle:  0,
		CornerPocketDepth:  0.04,
		CornerPocketRadius: 4 * 25.4 / 1000,
		CornerJawRadius:    4 * 25.4 / 1000,
		SidePocketWidth:    0.087,
		SidePocketAngle:    0,
		SidePocketDepth:    0.004,
		SidePocketRadius:   2 * 25.4 / 1000,
		SideJawRadius:      3 * 25.4 / 1000,
		PocketDepth:        0.08,
	}
}

// BilliardTableSpecs parameterizes a pocketless carom table.
type BilliardTableSpecs struct {
	L float64 `json:"l" yaml:"l"`
	W float64 `json:"w" yaml:"w"`

	CushionWidth  float64 `json:"cushion_width" yaml:"cushion_width"`
	CushionHeight float64 `json:"cushion_height" yaml:"cushion_height"`
}

func DefaultBilliardTableSpecs() BilliardTableSpecs {
	return BilliardTableSpecs{
		L:             3.05,
		W:             3.05 / 2,
		CushionWidth:  2 * 2.54 / 100,
		CushionHeight: 0.64 * 2 * 0.028575,
	}
}

// NewBilliardTable builds a pocketless table: four full-rail linear
// segments, no jaws, no pockets.
func NewBilliardTable(specs BilliardTableSpecs) *Table {
	h := specs.CushionHeight
	linear := map[string]*LinearCushionSegment{
		"3": {
			ID: "3_edge",
			P1: ptmath.Vec{0, 0, h}, P2: ptmath.Vec{0, specs.L, h},
			Direction: Side2,
		},
		"12": {
			ID: "12_edge",
			P1: ptmath.Vec{specs.W, specs.L, h}, P2: ptmath.Vec{specs.W, 0, h},
			Direction: Side1,
		},
		"9": {
			ID: "9_edge",
			P1: ptmath.Vec{0, specs.L, h}, P2: ptmath.Vec{specs.W, specs.L, h},
			Direction: Side1,
		},
		"18": {
			ID: "18_edge",
			P1: ptmath.Vec{0, 0, h}, P2: ptmath.Vec{specs.W, 0, h},
			Direction: Side2,
		},
	}
	return &Table{
		L: specs.L,
		W: specs.W,
		Cushions: CushionSegments{
			Linear:   linear,
			Circular: map[string]*CircularCushionSegment{},
		},
		Pockets: map[string]*Pocket{},
	}
}

// NewPocketTable builds the full six-pocket cushion layout: 18 linear
// segments (long rails plus pocket jaws) and 12 circular jaw tips.
func NewPocketTable(specs PocketTableSpecs) *Table {
	cw := specs.CushionWidth
	ca := (specs.CornerPocketAngle + 45) * math.Pi / 180
	sa := specs.SidePocketAngle * math.Pi / 180
	pw := specs.CornerPocketWidth
	sw := specs.SidePocketWidth
	h := specs.CushionHeight
	rc := specs.CornerJawRadius
	rs := specs.SideJawRadius
	dc := specs.CornerJawRadius / math.Tan((math.Pi/2+ca)/2)
	ds := specs.SideJawRadius / math.Tan((math.Pi/2+sa)/2)

	pwc := pw * math.Cos(math.Pi/4)
	l := specs.L
	w := specs.W

	linear := map[string]*LinearCushionSegment{
		// long rails
		"3": {
			ID: "3_edge",
			P1: ptmath.Vec{0, pwc + dc, h}, P2: ptmath.Vec{0, (l - sw) / 2 - ds, h},
			Direction: Side2,
		},
		"6": {
			ID: "6_edge",
			P1: ptmath.Vec{0, (l + sw) / 2 + ds, h}, P2: ptmath.Vec{0, -pwc + l - dc, h},
			Direction: Side2,
		},
		"15": {
			ID: "15_edge",
			P1: ptmath.Vec{w, pwc + dc, h}, P2: ptmath.Vec{w, (l - sw) / 2 - ds, h},
			Direction: Side1,
		},
		"12": {
			ID: "12_edge",
			P1: ptmath.Vec{w, (l + sw) / 2 + ds, h}, P2: ptmath.Vec{w, -pwc + l - dc, h},
			Direction: Side1,
		},
		"18": {
			ID: "18_edge",
			P1: ptmath.Vec{pwc + dc, 0, h}, P2: ptmath.Vec{-pwc + w - dc, 0, h},
			Direction: Side2,
		},
		"9": {
			ID: "9_edge",
			P1: ptmath.Vec{pwc + dc, l, h}, P2: ptmath.Vec{-pwc + w - dc, l, h},
			Direction: Side1,
		},
		// side pocket jaws
		"5": {
			ID: "5_edge",
			P1: ptmath.Vec{-cw, (l + sw) / 2 - cw*math.Sin(sa), h},
			P2: ptmath.Vec{-ds * math.Cos(sa), (l + sw) / 2 - ds*math.Sin(sa), h},
			Direction: Side1,
		},
		"4": {
			ID: "4_edge",
			P1: ptmath.Vec{-cw, (l - sw) / 2 + cw*math.Sin(sa), h},
			P2: ptmath.Vec{-ds * math.Cos(sa), (l - sw) / 2 + ds*math.Sin(sa), h},
			Direction: Side2,
		},
		"13": {
			ID: "13_edge",
			P1: ptmath.Vec{w + cw, (l + sw) / 2 - cw*math.Sin(sa), h},
			P2: ptmath.Vec{w + ds*math.Cos(sa), (l + sw) / 2 - ds*math.Sin(sa), h},
			Direction: Side1,
		},
		"14": {
			ID: "14_edge",
			P1: ptmath.Vec{w + cw, (l - sw) / 2 + cw*math.Sin(sa), h},
			P2: ptmath.Vec{w + ds*math.Cos(sa), (l - sw) / 2 + ds*math.Sin(sa), h},
			Direction: Side2,
		},
		// corner pocket jaws
		"1": {
			ID: "1_edge",
			P1: ptmath.Vec{pwc - cw*math.Tan(ca), -cw, h},
			P2: ptmath.Vec{pwc - dc*math.Sin(ca), -dc * math.Cos(ca), h},
			Direction: Side2,
		},
		"2": {
			ID: "2_edge",
			P1: ptmath.Vec{-cw, pwc - cw*math.Tan(ca), h},
			P2: ptmath.Vec{-dc * math.Cos(ca), pwc - dc*math.Sin(ca), h},
			Direction: Side1,
		},
		"8": {
			ID: "8_edge",
			P1: ptmath.Vec{pwc - cw*math.Tan(ca), cw + l, h},
			P2: ptmath.Vec{pwc - dc*math.Sin(ca), l + dc*math.Cos(ca), h},
			Direction: Side1,
		},
		"7": {
			ID: "7_edge",
			P1: ptmath.Vec{-cw, -pwc + cw*math.Tan(ca) + l, h},
			P2: ptmath.Vec{-dc * math.Cos(ca), -pwc + l + dc*math.Sin(ca), h},
			Direction: Side2,
		},
		"11": {
			ID: "11_edge",
			P1: ptmath.Vec{cw + w, -pwc + cw*math.Tan(ca) + l, h},
			P2: ptmath.Vec{w + dc*math.Cos(ca), -pwc + l + dc*math.Sin(ca), h},
			Direction: Side2,
		},
		"10": {
			ID: "10_edge",
			P1: ptmath.Vec{-pwc + cw*math.Tan(ca) + w, cw + l, h},
			P2: ptmath.Vec{-pwc + w + dc*math.Sin(ca), l + dc*math.Cos(ca), h},
			Direction: Side1,
		},
		"16": {
			ID: "16_edge",
			P1: ptmath.Vec{cw + w, pwc - cw*math.Tan(ca), h},
			P2: ptmath.Vec{w + dc*math.Cos(ca), pwc - dc*math.Sin(ca), h},
			Direction: Side1,
		},
		"17": {
			ID: "17_edge",
			P1: ptmath.Vec{-pwc + cw*math.Tan(ca) + w, -cw, h},
			P2: ptmath.Vec{-pwc + w + dc*math.Sin(ca), -dc * math.Cos(ca), h},
			Direction: Side2,
		},
	}

	circular := map[string]*CircularCushionSegment{
		"1t":  {ID: "1t", Center: ptmath.Vec{pwc + dc, -rc, h}, Radius: rc},
		"2t":  {ID: "2t", Center: ptmath.Vec{-rc, pwc + dc, h}, Radius: rc},
		"4t":  {ID: "4t", Center: ptmath.Vec{-rs, l/2 - sw/2 - ds, h}, Radius: rs},
		"5t":  {ID: "5t", Center: ptmath.Vec{-rs, l/2 + sw/2 + ds, h}, Radius: rs},
		"7t":  {ID: "7t", Center: ptmath.Vec{-rc, l - (pwc + dc), h}, Radius: rc},
		"8t":  {ID: "8t", Center: ptmath.Vec{pwc + dc, l + rc, h}, Radius: rc},
		"10t": {ID: "10t", Center: ptmath.Vec{w - pwc - dc, l + rc, h}, Radius: rc},
		"11t": {ID: "11t", Center: ptmath.Vec{w + rc, l - (pwc + dc), h}, Radius: rc},
		"13t": {ID: "13t", Center: ptmath.Vec{w + rs, l/2 + sw/2 + ds, h}, Radius: rs},
		"14t": {ID: "14t", Center: ptmath.Vec{w + rs, l/2 - sw/2 - ds, h}, Radius: rs},
		"16t": {ID: "16t", Center: ptmath.Vec{w + rc, pwc + dc, h}, Radius: rc},
		"17t": {ID: "17t", Center: ptmath.Vec{w - pwc - dc, -rc, h}, Radius: rc},
	}

	cr := specs.CornerPocketRadius
	sr := specs.SidePocketRadius
	cD := cr + specs.CornerPocketDepth - pw/2
	sD := sr + specs.SidePocketDepth
	sq2 := math.Sqrt2

	pockets := map[string]*Pocket{
		"lb": {ID: "lb", Center: ptmath.Vec{-cD / sq2, -cD / sq2, 0}, Radius: cr, Depth: specs.PocketDepth},
		"lc": {ID: "lc", Center: ptmath.Vec{-sD, l / 2, 0}, Radius: sr, Depth: specs.PocketDepth},
		"lt": {ID: "lt", Center: ptmath.Vec{-cD / sq2, l + cD/sq2, 0}, Radius: cr, Depth: specs.PocketDepth},
		"rb": {ID: "rb", Center: ptmath.Vec{w + cD/sq2, -cD / sq2, 0}, Radius: cr, Depth: specs.PocketDepth},
		"rc": {ID: "rc", Center: ptmath.Vec{w + sD, l / 2, 0}, Radius: sr, Depth: specs.PocketDepth},
		"rt": {ID: "rt", Center: ptmath.Vec{w + cD/sq2, l + cD/sq2, 0}, Radius: cr, Depth: specs.PocketDepth},
	}

	return &Table{
		L: specs.L,
		W: specs.W,
		Cushions: CushionSegments{
			Linear:   linear,
			Circular: circular,
		},
		Pockets: pockets,
	}
}
