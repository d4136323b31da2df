package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/poolsim/internal/ptmath"
	"github.com/san-kum/poolsim/internal/system"
)

// EnergyPlot charts total kinetic energy over the dense trajectory.
func EnergyPlot(shot *system.System, width, height int) (string, error) {
	if !shot.Continuized() {
		return "", fmt.Errorf("shot has no dense trajectories; simulate with continuize enabled")
	}

	var frames int
	for _, b := range shot.Balls {
		if n := len(b.HistoryCts.States); n > frames {
			frames = n
		}
	}

	series := make([]float64, frames)
	for _, b := range shot.Balls {
		for f := 0; f < frames; f++ {
			st := stateAt(b, f)
			series[f] += ptmath.BallEnergy(st.RVW, b.Params.R, b.Params.M)
		}
	}

	chart := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("total kinetic energy (J)"))
	return chart, nil
}

// SpeedPlot charts each ball's speed over the dense trajectory, one chart
// per ball, skipping balls that never move.
func SpeedPlot(shot *system.System, width, height int) (string, error) {
	if !shot.Continuized() {
		return "", fmt.Errorf("shot has no dense trajectories; simulate with continuize enabled")
	}

	ids := make([]string, 0, len(shot.Balls))
	for id := range shot.Balls {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out strings.Builder
	for _, id := range ids {
		b := shot.Balls[id]
		series := make([]float64, len(b.HistoryCts.States))
		var moved bool
		for i, st := range b.HistoryCts.States {
			series[i] = st.RVW.V.Norm()
			if series[i] > 0 {
				moved = true
			}
		}
		if !moved || len(series) < 2 {
			continue
		}

		chart := asciigraph.Plot(series,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(fmt.Sprintf("ball %s speed (m/s)", id)))
		out.WriteString(chart + "\n\n")
	}
	return out.String(), nil
}
