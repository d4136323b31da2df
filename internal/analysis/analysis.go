// Package analysis computes post-shot statistics from a simulated system:
// per-ball travel distance and peak speed, event-type counts, and contact
// ordering. All of it is derived from the recorded histories; nothing here
// re-runs physics.
package analysis

import (
	"sort"

	"github.com/san-kum/poolsim/internal/events"
	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/system"
)

// BallStats summarizes one ball's trajectory.
type BallStats struct {
	ID          string  `json:"id"`
	Distance    float64 `json:"distance"`
	MaxSpeed    float64 `json:"max_speed"`
	CushionHits int     `json:"cushion_hits"`
	Pocketed    bool    `json:"pocketed"`
}

// ShotStats summarizes a whole simulated shot.
type ShotStats struct {
	Duration    float64              `json:"duration"`
	NumEvents   int                  `json:"num_events"`
	EventCounts map[string]int       `json:"event_counts"`
	FirstHitID  string               `json:"first_hit_id"`
	Balls       map[string]BallStats `json:"balls"`
}

// Summarize walks the event list and ball histories of a simulated shot.
func Summarize(shot *system.System) *ShotStats {
	stats := &ShotStats{
		Duration:    shot.T,
		EventCounts: make(map[string]int),
		Balls:       make(map[string]BallStats),
	}

	cushionHits := make(map[string]int)
	for _, e := range shot.Events {
		if e.Type == events.None {
			continue
		}
		stats.NumEvents++
		stats.EventCounts[e.Type.String()]++

		switch e.Type {
		case events.BallBall:
			if stats.FirstHitID == "" && len(e.Agents) == 2 {
				stats.FirstHitID = e.Agents[1].ID
			}
		case events.BallLinearCushion, events.BallCircularCushion:
			if len(e.Agents) > 0 {
				cushionHits[e.Agents[0].ID]++
			}
		}
	}

	for id, b := range shot.Balls {
		bs := BallStats{
			ID:          id,
			CushionHits: cushionHits[id],
		}

		// Event history gives exact segment endpoints; dense states would
		// undercount curved paths the same way, so straight chords between
		// event states are good enough here.
		for i := 1; i < len(b.History.States); i++ {
			prev := b.History.States[i-1].RVW.R
			cur := b.History.States[i].RVW.R
			bs.Distance += cur.Sub(prev).Norm()
		}
		for _, st := range b.History.States {
			if v := st.RVW.V.Norm(); v > bs.MaxSpeed {
				bs.MaxSpeed = v
			}
		}
		bs.Pocketed = b.State.S == objects.Pocketed

		stats.Balls[id] = bs
	}

	return stats
}

// BallIDs returns the ball ids of the stats in sorted order.
func (s *ShotStats) BallIDs() []string {
	ids := make([]string, 0, len(s.Balls))
	for id := range s.Balls {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
