package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/poolsim/internal/events"
	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/system"
)

// finishedShot builds a minimal completed system: one collision framed by
// null events.
func finishedShot(t *testing.T) *system.System {
	t.Helper()

	p := objects.DefaultBallParams()
	table := objects.NewPocketTable(objects.DefaultPocketTableSpecs())

	cue := objects.NewCue()
	cue.BallID = "cue"
	cue.V0 = 3
	cue.Phi = 45

	cueBall := objects.NewBallAt("cue", 0.5, 0.5, p)
	one := objects.NewBallAt("1", 0.5, 1.2, p)

	shot, err := system.New(table, cue, map[string]*objects.Ball{"cue": cueBall, "1": one})
	if err != nil {
		t.Fatal(err)
	}

	shot.UpdateHistory(events.NewNullEvent(0))
	shot.UpdateHistory(events.NewBallBallCollision(cueBall, one, 0.4))
	one.State.RVW.R = table.Pockets["lb"].Center
	one.State.S = objects.Pocketed
	shot.UpdateHistory(events.NewBallPocketCollision(one, table.Pockets["lb"], 0.8))
	shot.UpdateHistory(events.NewNullEvent(1.1))
	return shot
}

func TestStore_SaveAndList(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	shot := finishedShot(t)
	runID, err := store.Save("nineball", 42, shot)
	if err != nil {
		t.Fatal(err)
	}
	if runID == "" {
		t.Fatal("empty run id")
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("listed %d runs, want 1", len(runs))
	}

	meta := runs[0]
	if meta.ID != runID || meta.Game != "nineball" || meta.Seed != 42 {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.NumEvents != 4 || meta.Duration != 1.1 {
		t.Errorf("run shape = %d events over %v", meta.NumEvents, meta.Duration)
	}
	if meta.V0 != 3 || meta.Phi != 45 {
		t.Errorf("cue strike = v0 %v phi %v", meta.V0, meta.Phi)
	}
	if len(meta.Pocketed) != 1 || meta.Pocketed[0] != "1" {
		t.Errorf("pocketed = %v, want the 1 ball", meta.Pocketed)
	}
}

func TestStore_LoadSystemRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	shot := finishedShot(t)
	runID, err := store.Save("nineball", 1, shot)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadSystem(runID)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.T != shot.T {
		t.Errorf("T = %v, want %v", loaded.T, shot.T)
	}
	if len(loaded.Events) != len(shot.Events) {
		t.Fatalf("events = %d, want %d", len(loaded.Events), len(shot.Events))
	}
	for i := range shot.Events {
		if loaded.Events[i].Type != shot.Events[i].Type {
			t.Errorf("event %d type = %v, want %v", i, loaded.Events[i].Type, shot.Events[i].Type)
		}
	}
	if len(loaded.Balls) != 2 {
		t.Fatalf("balls = %d, want 2", len(loaded.Balls))
	}

	orig := shot.Balls["cue"].State.RVW.R
	got := loaded.Balls["cue"].State.RVW.R
	if got.Sub(orig).Norm() > 1e-12 {
		t.Errorf("cue ball position = %v, want %v", got, orig)
	}
	if loaded.Balls["1"].State.S != objects.Pocketed {
		t.Errorf("1 ball state = %v, want pocketed", loaded.Balls["1"].State.S)
	}
}

func TestStore_LoadMetadata(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.Save("nineball", 7, finishedShot(t))
	if err != nil {
		t.Fatal(err)
	}

	meta, err := store.LoadMetadata(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.ID != runID || meta.Seed != 7 {
		t.Errorf("metadata = %+v", meta)
	}

	if _, err := store.LoadMetadata("nineball_0"); err == nil {
		t.Error("missing run accepted")
	}
}

func TestStore_ListSkipsForeignEntries(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	// Stray files and run directories without metadata are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "half_written"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("listed %d runs, want 0", len(runs))
	}
}

func TestStore_ListMissingBaseDir(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "never-created"))

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("listed %d runs, want 0", len(runs))
	}
}
