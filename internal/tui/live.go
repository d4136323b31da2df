// Package tui renders shots as ANSI rune frames directly to the terminal,
// for watching a simulation without a full-screen application.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/system"
)

const (
	width       = 70
	height      = 30
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws a top-down view of the table onto a rune canvas. The
// aspect ratio is uneven because terminal cells are taller than wide, so
// the x scale is doubled relative to y.
type LiveRenderer struct {
	frameRate int
	canvas    [][]rune
	trails    map[string][]struct{ x, y int }
}

func NewLiveRenderer(frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		frameRate: frameRate,
		canvas:    canvas,
		trails:    make(map[string][]struct{ x, y int }),
	}
}

// Play replays a continuized shot frame by frame at the configured frame
// rate, scaled by speed (1.0 is real time).
func (r *LiveRenderer) Play(shot *system.System, speed float64) error {
	if !shot.Continuized() {
		return fmt.Errorf("shot has no dense trajectories; simulate with continuize enabled")
	}
	if speed <= 0 {
		speed = 1
	}

	ids := sortedIDs(shot.Balls)

	var numFrames int
	for _, b := range shot.Balls {
		if n := len(b.HistoryCts.States); n > numFrames {
			numFrames = n
		}
	}

	r.Start()
	defer r.Stop()

	var frameDt float64
	if numFrames > 1 {
		b := shot.Balls[ids[0]]
		if len(b.HistoryCts.States) > 1 {
			frameDt = b.HistoryCts.States[1].T - b.HistoryCts.States[0].T
		}
	}
	delay := time.Duration(float64(time.Second) * frameDt / speed)
	if delay <= 0 {
		delay = time.Second / time.Duration(r.frameRate)
	}

	for frame := 0; frame < numFrames; frame++ {
		r.clear()
		r.drawTable(shot.Table)

		var t float64
		for _, id := range ids {
			b := shot.Balls[id]
			idx := frame
			if idx >= len(b.HistoryCts.States) {
				idx = len(b.HistoryCts.States) - 1
			}
			st := b.HistoryCts.States[idx]
			t = st.T
			r.drawBall(shot.Table, id, st)
		}

		r.render(shot, t)
		time.Sleep(delay)
	}

	return nil
}

func sortedIDs(balls map[string]*objects.Ball) []string {
	ids := make([]string, 0, len(balls))
	for id := range balls {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

// project maps table coordinates to canvas cells. Table y runs up the
// screen; canvas y runs down.
func (r *LiveRenderer) project(t *objects.Table, x, y float64) (int, int) {
	margin := 2.0
	cx := int(margin + x/t.W*float64(width-1-2*int(margin)))
	cy := int(float64(height-1) - margin - y/t.L*float64(height-1-2*int(margin)))
	return cx, cy
}

func (r *LiveRenderer) drawTable(t *objects.Table) {
	x0, y0 := r.project(t, 0, t.L)
	x1, y1 := r.project(t, t.W, 0)

	for x := x0; x <= x1; x++ {
		r.set(x, y0-1, '=')
		r.set(x, y1+1, '=')
	}
	for y := y0; y <= y1; y++ {
		r.set(x0-1, y, '|')
		r.set(x1+1, y, '|')
	}

	for _, p := range t.Pockets {
		px, py := r.project(t, p.Center[0], p.Center[1])
		r.set(px, py, 'U')
	}
}

func (r *LiveRenderer) drawBall(t *objects.Table, id string, st objects.BallState) {
	if st.S == objects.Pocketed {
		return
	}

	bx, by := r.project(t, st.RVW.R[0], st.RVW.R[1])

	trail := append(r.trails[id], struct{ x, y int }{bx, by})
	if len(trail) > 30 {
		trail = trail[1:]
	}
	r.trails[id] = trail

	for _, pt := range trail {
		if r.canvas[clampY(pt.y)][clampX(pt.x)] == ' ' {
			r.set(pt.x, pt.y, '.')
		}
	}

	c := []rune(id)[0]
	if id == "cue" || id == "white" {
		c = 'O'
	}
	r.set(bx, by, c)
}

func clampX(x int) int {
	if x < 0 {
		return 0
	}
	if x >= width {
		return width - 1
	}
	return x
}

func clampY(y int) int {
	if y < 0 {
		return 0
	}
	if y >= height {
		return height - 1
	}
	return y
}

func (r *LiveRenderer) render(shot *system.System, t float64) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  t=%.2fs  events=%d\n", t, len(shot.Events)))

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	var pocketed []string
	for _, p := range shot.Table.Pockets {
		pocketed = append(pocketed, p.Contains...)
	}
	sort.Strings(pocketed)
	if len(pocketed) > 0 {
		b.WriteString("  pocketed: " + strings.Join(pocketed, ", ") + "\n")
	}

	fmt.Print(b.String())
}

func (r *LiveRenderer) Start() { fmt.Print(hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Print(showCursor) }
