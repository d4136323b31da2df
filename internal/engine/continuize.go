package engine

import (
	"github.com/san-kum/poolsim/internal/events"
	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/physics"
	"github.com/san-kum/poolsim/internal/system"
)

// Continuize populates every ball's dense trajectory by sampling its
// analytic motion on a shared uniform grid of dt seconds. The event
// timeline is the ground truth; each sample launches from the outgoing
// state of the last event before it, so re-running Continuize never drifts.
// The final event state is appended even though it breaks the uniform
// spacing, so the dense history always ends exactly where the shot did.
func Continuize(shot *system.System, dt float64) {
	if len(shot.Events) == 0 {
		return
	}

	finalTime := shot.Events[len(shot.Events)-1].Time
	numTimestamps := int(finalTime/dt) + 1

	for _, ball := range shot.Balls {
		if ball.History.Empty() {
			continue
		}

		history := objects.BallHistory{}
		history.Add(ball.History.States[0])

		rvw := ball.History.States[0].RVW
		s := ball.History.States[0].S

		// All events touching this ball, bracketed by the null events that
		// mark the start and end of the shot.
		evs := ballTimeline(shot.Events, ball.ID)

		count := 0
		elapsed := 0.0

		for n := 0; n < numTimestamps; n++ {
			if n == numTimestamps-1 {
				break
			}

			var evolveTime float64
			if evs[count+1].Time-elapsed > dt {
				evolveTime = dt
			} else {
				// One or more events fall inside this step. Launch from the
				// outgoing state of the last one.
				for evs[count+1].Time-elapsed <= dt {
					count++
				}

				if st, ok := outgoingState(evs[count], ball.ID); ok {
					rvw, s = st.RVW, st.S
				}
				evolveTime = elapsed + dt - evs[count].Time
			}

			rvw, s = physics.EvolveBallMotion(s, rvw, ball.Params, evolveTime)
			history.Add(objects.BallState{RVW: rvw, S: s, T: elapsed + dt})
			elapsed += dt
		}

		last, _ := ball.History.Last()
		history.Add(last)

		ball.HistoryCts = history
	}
}

// ballTimeline returns the events involving the ball, keeping the null
// events that bracket the shot.
func ballTimeline(evs []events.Event, ballID string) []events.Event {
	var out []events.Event
	for _, e := range evs {
		if e.Type == events.None || e.InvolvesBall(ballID) {
			out = append(out, e)
		}
	}
	return out
}

// outgoingState extracts the ball's post-resolution state from an event.
func outgoingState(e events.Event, ballID string) (objects.BallState, bool) {
	for _, a := range e.Agents {
		if a.Type == events.BallAgent && a.ID == ballID && a.FinalBall != nil {
			return a.FinalBall.State, true
		}
	}
	return objects.BallState{}, false
}
