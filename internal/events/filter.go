package events

// FilterBall keeps events that involve any of the given balls. Transition
// and null events without ball agents are dropped.
func FilterBall(evs []Event, ballIDs ...string) []Event {
	var out []Event
	for _, e := range evs {
		for _, id := range ballIDs {
			if e.InvolvesBall(id) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// FilterType keeps events of any of the given types.
func FilterType(evs []Event, types ...EventType) []Event {
	var out []Event
	for _, e := range evs {
		for _, t := range types {
			if e.Type == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// FilterTime keeps events occurring strictly after t.
func FilterTime(evs []Event, t float64) []Event {
	var out []Event
	for _, e := range evs {
		if e.Time > t {
			out = append(out, e)
		}
	}
	return out
}
