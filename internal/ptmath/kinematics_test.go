package ptmath

import (
	"math"
	"testing"
)

func TestRelVelocity(t *testing.T) {
	radius := 0.028575

	// Rolling without slipping: v = w x r, contact point at rest.
	rolling := RVW{
		V: Vec{1, 0, 0},
		W: Vec{0, 1 / radius, 0},
	}
	if rel := RelVelocity(rolling, radius); rel.Norm() > 1e-12 {
		t.Errorf("rolling ball has nonzero relative velocity %v", rel)
	}

	// Pure translation with no spin slides at full speed.
	sliding := RVW{V: Vec{1, 0, 0}}
	if rel := RelVelocity(sliding, radius); math.Abs(rel.Norm()-1) > 1e-12 {
		t.Errorf("sliding relative velocity = %v, want norm 1", rel)
	}
}

func TestSlideTime(t *testing.T) {
	radius, us, g := 0.028575, 0.2, 9.81

	q := RVW{V: Vec{2, 0, 0}}
	got := SlideTime(q, radius, us, g)
	want := 2 * 2.0 / (7 * us * g)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("SlideTime = %v, want %v", got, want)
	}

	if !math.IsInf(SlideTime(q, radius, 0, g), 1) {
		t.Error("zero friction should slide forever")
	}
}

func TestRollTime(t *testing.T) {
	ur, g := 0.01, 9.81

	q := RVW{V: Vec{0, 1.5, 0}}
	got := RollTime(q, ur, g)
	if math.Abs(got-1.5/(ur*g)) > 1e-12 {
		t.Errorf("RollTime = %v", got)
	}

	if !math.IsInf(RollTime(q, 0, g), 1) {
		t.Error("zero friction should roll forever")
	}
}

func TestSpinTime(t *testing.T) {
	radius, usp, g := 0.028575, 10*2.0/5/9, 9.81

	q := RVW{W: Vec{0, 0, 30}}
	got := SpinTime(q, radius, usp, g)
	want := 30 * 2.0 / 5 * radius / usp / g
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("SpinTime = %v, want %v", got, want)
	}

	// Sign of the spin must not matter.
	q.W[2] = -30
	if math.Abs(SpinTime(q, radius, usp, g)-want) > 1e-12 {
		t.Error("SpinTime should use the magnitude of the z spin")
	}
}

func TestBallEnergy(t *testing.T) {
	m, radius := 0.170097, 0.028575

	if e := BallEnergy(RVW{}, radius, m); e != 0 {
		t.Errorf("stationary ball energy = %v, want 0", e)
	}

	q := RVW{V: Vec{2, 0, 0}}
	if e := BallEnergy(q, radius, m); math.Abs(e-0.5*m*4) > 1e-12 {
		t.Errorf("translational energy = %v", e)
	}

	// Adding spin only adds energy.
	q.W = Vec{0, 20, 0}
	if e := BallEnergy(q, radius, m); e <= 0.5*m*4 {
		t.Errorf("energy with spin = %v, should exceed translational part", e)
	}
}

func TestRVW_RotateZ(t *testing.T) {
	q := RVW{
		R: Vec{1, 0, 0.028575},
		V: Vec{0, 2, 0},
		W: Vec{3, 0, 1},
	}
	rot := q.RotateZ(math.Pi)
	if !vecNear(rot.R, Vec{-1, 0, 0.028575}, 1e-12) {
		t.Errorf("R after rotation = %v", rot.R)
	}
	if !vecNear(rot.V, Vec{0, -2, 0}, 1e-12) {
		t.Errorf("V after rotation = %v", rot.V)
	}
	if !vecNear(rot.W, Vec{-3, 0, 1}, 1e-12) {
		t.Errorf("W after rotation = %v", rot.W)
	}
}
