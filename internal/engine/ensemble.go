package engine

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/san-kum/poolsim/internal/events"
	"github.com/san-kum/poolsim/internal/system"
)

// EnsembleConfig defines a batch of perturbed re-simulations of one shot.
// Each trial jitters the cue strike speed and aim angle by uniform noise,
// probing how sensitive the outcome is to execution error.
type EnsembleConfig struct {
	NumTrials int
	SpeedStd  float64 // uniform half-width on V0, m/s
	AngleStd  float64 // uniform half-width on phi, degrees
	Seed      int64
	Workers   int
	Options   Options
}

// TrialResult summarizes one ensemble trial.
type TrialResult struct {
	TrialID    int
	V0         float64
	Phi        float64
	NumEvents  int
	Duration   float64
	Pocketed   []string
	FirstHitID string
}

// RunEnsemble simulates NumTrials perturbed copies of the shot
// concurrently. The passed shot is never modified.
func RunEnsemble(ctx context.Context, shot *system.System, cfg EnsembleConfig) ([]TrialResult, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Draw all perturbations up front so results are reproducible per seed
	// regardless of worker scheduling.
	rng := rand.New(rand.NewSource(seed))
	type trial struct {
		id      int
		v0, phi float64
	}
	trials := make([]trial, cfg.NumTrials)
	for i := range trials {
		trials[i] = trial{
			id:  i,
			v0:  shot.Cue.V0 + (rng.Float64()-0.5)*2*cfg.SpeedStd,
			phi: shot.Cue.Phi + (rng.Float64()-0.5)*2*cfg.AngleStd,
		}
	}

	results := make([]TrialResult, cfg.NumTrials)
	jobs := make(chan trial)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tr := range jobs {
				copied := shot.Copy()
				copied.Cue.V0 = tr.v0
				copied.Cue.Phi = tr.phi
				Simulate(copied, cfg.Options)
				results[tr.id] = summarize(tr.id, copied)
			}
		}()
	}

	var err error
loop:
	for _, tr := range trials {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break loop
		case jobs <- tr:
		}
	}
	close(jobs)
	wg.Wait()

	return results, err
}

func summarize(id int, shot *system.System) TrialResult {
	r := TrialResult{
		TrialID:  id,
		V0:       shot.Cue.V0,
		Phi:      shot.Cue.Phi,
		Duration: shot.T,
	}

	for _, e := range shot.Events {
		switch e.Type {
		case events.None:
			continue
		case events.BallPocket:
			r.Pocketed = append(r.Pocketed, e.Agents[0].ID)
		case events.BallBall:
			if r.FirstHitID == "" {
				r.FirstHitID = e.Agents[1].ID
			}
		}
		r.NumEvents++
	}

	return r
}
