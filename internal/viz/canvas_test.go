package viz

import (
	"strings"
	"testing"
)

func TestCanvas_Dimensions(t *testing.T) {
	c := NewCanvas(10, 4)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("canvas has %d rows, want 4", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 10 {
			t.Errorf("row %d has %d cells, want 10", i, n)
		}
	}
}

func TestCanvas_SetAndClear(t *testing.T) {
	c := NewCanvas(10, 4)

	// Sub-pixel (3, 5) lands in cell (1, 1).
	c.Set(3, 5)
	if c.Grid[1][1] == '⠀' {
		t.Error("set pixel left the cell blank")
	}
	if c.Grid[0][0] != '⠀' {
		t.Error("set pixel leaked into another cell")
	}

	// Pixels in the same cell accumulate dots.
	before := c.Grid[1][1]
	c.Set(2, 4)
	if c.Grid[1][1] == before {
		t.Error("second pixel did not change the cell")
	}

	c.Clear()
	if c.Grid[1][1] != '⠀' {
		t.Error("clear left dots behind")
	}
}

func TestCanvas_IgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(4, 4)

	// Out-of-range pixels must not panic or wrap.
	c.Set(-1, 2)
	c.Set(100, 2)
	c.Set(2, -5)
	c.Set(2, 100)

	for row := range c.Grid {
		for col := range c.Grid[row] {
			if c.Grid[row][col] != '⠀' {
				t.Fatalf("cell (%d, %d) lit by an out-of-range pixel", col, row)
			}
		}
	}
}

func TestCanvas_SetRuneOverridesDots(t *testing.T) {
	c := NewCanvas(6, 3)
	c.Set(4, 5)
	c.SetRune(2, 1, 'O')

	if c.Grid[1][2] != 'O' {
		t.Errorf("cell = %q, want O", c.Grid[1][2])
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(10, 4)
	c.DrawLine(0, 0, 19, 0)

	// A horizontal line along the top lights every cell in the first row.
	for col := 0; col < 10; col++ {
		if c.Grid[0][col] == '⠀' {
			t.Errorf("cell %d on the line left blank", col)
		}
	}
	for col := 0; col < 10; col++ {
		if c.Grid[2][col] != '⠀' {
			t.Errorf("cell %d off the line was lit", col)
		}
	}
}
