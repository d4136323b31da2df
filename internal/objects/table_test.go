package objects

import (
	"math"
	"testing"

	"github.com/san-kum/poolsim/internal/ptmath"
)

func TestNewPocketTable_Geometry(t *testing.T) {
	table := NewPocketTable(DefaultPocketTableSpecs())

	if got := len(table.Cushions.Linear); got != 18 {
		t.Errorf("linear segments = %d, want 18", got)
	}
	if got := len(table.Cushions.Circular); got != 12 {
		t.Errorf("jaw tips = %d, want 12", got)
	}
	if got := len(table.Pockets); got != 6 {
		t.Errorf("pockets = %d, want 6", got)
	}
	if !table.HasPockets() {
		t.Error("pocket table reports no pockets")
	}

	// All cushion faces sit at the same height above the cloth.
	h := DefaultPocketTableSpecs().CushionHeight
	for id, s := range table.Cushions.Linear {
		if s.Height() != h {
			t.Errorf("segment %s at height %v, want %v", id, s.Height(), h)
		}
	}
	for id, s := range table.Cushions.Circular {
		if s.Height() != h {
			t.Errorf("jaw %s at height %v, want %v", id, s.Height(), h)
		}
	}

	// Side pockets sit at mid-table, corner pockets off the corners.
	if c := table.Pockets["lc"].Center; math.Abs(c[1]-table.L/2) > 1e-12 || c[0] >= 0 {
		t.Errorf("left side pocket at %v", c)
	}
	if c := table.Pockets["lb"].Center; c[0] >= 0 || c[1] >= 0 {
		t.Errorf("bottom-left pocket at %v, want outside the playing area", c)
	}
}

func TestNewBilliardTable_Geometry(t *testing.T) {
	table := NewBilliardTable(DefaultBilliardTableSpecs())

	if got := len(table.Cushions.Linear); got != 4 {
		t.Errorf("linear segments = %d, want 4", got)
	}
	if len(table.Cushions.Circular) != 0 || table.HasPockets() {
		t.Error("carom table carries pocket geometry")
	}

	x, y := table.Center()
	if x != table.W/2 || y != table.L/2 {
		t.Errorf("center = (%v, %v)", x, y)
	}
}

func TestLinearCushionSegment_LineCoefficients(t *testing.T) {
	h := 0.04

	tests := []struct {
		name   string
		seg    LinearCushionSegment
		px, py float64
	}{
		{
			"horizontal rail",
			LinearCushionSegment{P1: ptmath.Vec{0, 1, h}, P2: ptmath.Vec{2, 1, h}},
			0.7, 1,
		},
		{
			"vertical rail",
			LinearCushionSegment{P1: ptmath.Vec{1.5, 0, h}, P2: ptmath.Vec{1.5, 2, h}},
			1.5, 0.3,
		},
		{
			"angled jaw",
			LinearCushionSegment{P1: ptmath.Vec{0, 0, h}, P2: ptmath.Vec{1, 2, h}},
			0.5, 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Both endpoints and any point on the segment satisfy the line
			// equation.
			for _, pt := range [][2]float64{
				{tt.seg.P1[0], tt.seg.P1[1]},
				{tt.seg.P2[0], tt.seg.P2[1]},
				{tt.px, tt.py},
			} {
				v := tt.seg.Lx()*pt[0] + tt.seg.Ly()*pt[1] + tt.seg.L0()
				if math.Abs(v) > 1e-12 {
					t.Errorf("point (%v, %v) off the line by %v", pt[0], pt[1], v)
				}
			}

			n := tt.seg.Normal()
			if math.Abs(n.Norm()-1) > 1e-12 {
				t.Errorf("normal %v is not unit length", n)
			}
			along := tt.seg.P2.Sub(tt.seg.P1)
			if math.Abs(n.Dot(along)) > 1e-9 {
				t.Errorf("normal %v not perpendicular to the segment", n)
			}
		})
	}
}

func TestCircularCushionSegment_Normal(t *testing.T) {
	seg := CircularCushionSegment{
		ID: "4t", Center: ptmath.Vec{1, 2, 0.04}, Radius: 0.01,
	}

	n := seg.Normal(ptmath.Vec{1.5, 2, 0.028})
	if n.Sub(ptmath.Vec{1, 0, 0}).Norm() > 1e-12 {
		t.Errorf("normal = %v, want +x", n)
	}

	// The normal is always in the cloth plane.
	n = seg.Normal(ptmath.Vec{0.7, 2.4, 0.1})
	if n[2] != 0 || math.Abs(n.Norm()-1) > 1e-12 {
		t.Errorf("normal = %v, want unit length in the plane", n)
	}
}

func TestPocket_AddRemove(t *testing.T) {
	p := &Pocket{ID: "lb"}
	p.Add("1")
	p.Add("9")
	p.Remove("1")

	if len(p.Contains) != 1 || p.Contains[0] != "9" {
		t.Errorf("contents = %v, want [9]", p.Contains)
	}

	// Removing an absent ball is a no-op.
	p.Remove("5")
	if len(p.Contains) != 1 {
		t.Errorf("contents = %v after removing an absent ball", p.Contains)
	}
}

func TestTable_CopyIsDeep(t *testing.T) {
	table := NewPocketTable(DefaultPocketTableSpecs())
	table.Pockets["lb"].Add("8")

	c := table.Copy()
	c.Pockets["lb"].Add("9")
	c.Cushions.Linear["3"].P1[0] = 99

	if len(table.Pockets["lb"].Contains) != 1 {
		t.Error("copy shares pocket contents with the original")
	}
	if table.Cushions.Linear["3"].P1[0] == 99 {
		t.Error("copy shares cushion geometry with the original")
	}
}
