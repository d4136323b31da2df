package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/ptmath"
	"github.com/san-kum/poolsim/internal/system"
)

const (
	canvasWidth  = 44
	canvasHeight = 30
)

type TickMsg time.Time

// Model replays a simulated shot as a full-screen terminal application.
// The shot must carry dense trajectories; the model never re-runs physics,
// it only walks the sampled states.
type Model struct {
	shot    *system.System
	ids     []string
	canvas  *Canvas
	frame   int
	frames  int
	frameDt float64

	playing  bool
	speed    float64
	showHelp bool

	energyHistory []float64
}

func NewModel(shot *system.System) (Model, error) {
	if !shot.Continuized() {
		return Model{}, fmt.Errorf("shot has no dense trajectories; simulate with continuize enabled")
	}

	ids := make([]string, 0, len(shot.Balls))
	var frames int
	for id, b := range shot.Balls {
		ids = append(ids, id)
		if n := len(b.HistoryCts.States); n > frames {
			frames = n
		}
	}
	sort.Strings(ids)

	var frameDt float64
	if b := shot.Balls[ids[0]]; len(b.HistoryCts.States) > 1 {
		frameDt = b.HistoryCts.States[1].T - b.HistoryCts.States[0].T
	}
	if frameDt <= 0 {
		frameDt = 1.0 / 60
	}

	m := Model{
		shot:    shot,
		ids:     ids,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		frames:  frames,
		frameDt: frameDt,
		playing: true,
		speed:   1,
	}
	m.energyHistory = make([]float64, frames)
	for f := 0; f < frames; f++ {
		var e float64
		for _, id := range ids {
			b := shot.Balls[id]
			st := stateAt(b, f)
			e += ptmath.BallEnergy(st.RVW, b.Params.R, b.Params.M)
		}
		m.energyHistory[f] = e
	}
	return m, nil
}

func stateAt(b *objects.Ball, frame int) objects.BallState {
	if frame >= len(b.HistoryCts.States) {
		frame = len(b.HistoryCts.States) - 1
	}
	return b.HistoryCts.States[frame]
}

func (m Model) tick() tea.Cmd {
	delay := time.Duration(float64(time.Second) * m.frameDt / m.speed)
	return tea.Tick(delay, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "r":
			m.frame = 0
			m.playing = true
		case "[":
			m.frame -= 10
			if m.frame < 0 {
				m.frame = 0
			}
		case "]":
			m.frame += 10
			if m.frame >= m.frames {
				m.frame = m.frames - 1
			}
		case "+", "=":
			if m.speed < 8 {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 0.25 {
				m.speed /= 2
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.playing && m.frame < m.frames-1 {
			m.frame++
		}
		return m, m.tick()
	}
	return m, nil
}

// project maps table coordinates to sub-pixel canvas coordinates. Table y
// points up the table, canvas y points down the screen.
func (m Model) project(x, y float64) (int, int) {
	t := m.shot.Table
	spW := float64(canvasWidth*2 - 8)
	spH := float64(canvasHeight*4 - 8)
	scale := spW / t.W
	if s := spH / t.L; s < scale {
		scale = s
	}
	px := 4 + int(x*scale)
	py := canvasHeight*4 - 4 - int(y*scale)
	return px, py
}

func (m *Model) draw() {
	m.canvas.Clear()
	t := m.shot.Table

	for _, seg := range t.Cushions.Linear {
		x0, y0 := m.project(seg.P1[0], seg.P1[1])
		x1, y1 := m.project(seg.P2[0], seg.P2[1])
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
	for _, seg := range t.Cushions.Circular {
		x, y := m.project(seg.Center[0], seg.Center[1])
		m.canvas.Set(x, y)
	}
	for _, p := range t.Pockets {
		x, y := m.project(p.Center[0], p.Center[1])
		m.canvas.DrawCircle(x, y, 2)
	}

	for _, id := range m.ids {
		b := m.shot.Balls[id]
		st := stateAt(b, m.frame)
		if st.S == objects.Pocketed {
			continue
		}
		x, y := m.project(st.RVW.R[0], st.RVW.R[1])
		r := []rune(id)[0]
		if id == "cue" || id == "white" {
			r = '●'
		}
		m.canvas.SetRune(x/2, y/4, r)
	}
}

func (m Model) View() string {
	mm := m
	mm.draw()

	table := canvasStyle.Render(mm.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("poolsim replay") + "\n")

	status := "PLAYING"
	if !m.playing {
		status = "PAUSED"
	}
	t := float64(m.frame) * m.frameDt
	s.WriteString(fmt.Sprintf("%s  x%.2g\n\n", status, m.speed))
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs / %.2fs", t, float64(m.frames-1)*m.frameDt)) + "\n")
	s.WriteString(labelStyle.Render("Events") + valueStyle.Render(fmt.Sprintf("%d", len(m.shot.Events))) + "\n")

	var pocketed []string
	for _, p := range m.shot.Table.Pockets {
		pocketed = append(pocketed, p.Contains...)
	}
	sort.Strings(pocketed)
	if len(pocketed) > 0 {
		s.WriteString(labelStyle.Render("Pocketed") + valueStyle.Render(strings.Join(pocketed, " ")) + "\n")
	}

	if m.frame > 1 {
		hist := m.energyHistory[:m.frame+1]
		chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy (J)"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\n")
	for _, id := range m.ids {
		b := m.shot.Balls[id]
		st := stateAt(b, m.frame)
		line := fmt.Sprintf("%-6s %-10s %5.2f m/s", id, st.S, st.RVW.V.Norm())
		s.WriteString(valueStyle.Render(line) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("\nspace pause  r restart  [/] scrub  +/- speed  q quit"))
	} else {
		s.WriteString(helpStyle.Render("\n? help  q quit"))
	}

	stats := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, table, stats)
}

// Run launches the replay UI and blocks until it exits.
func Run(shot *system.System) error {
	m, err := NewModel(shot)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
