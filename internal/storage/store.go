package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/poolsim/internal/events"
	"github.com/san-kum/poolsim/internal/system"
)

// Store persists simulated shots, one directory per run, holding
// metadata.json, the full system state in system.json, and a flat
// events.csv for quick inspection without JSON tooling.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Game      string    `json:"game"`
	Timestamp time.Time `json:"timestamp"`
	Seed      int64     `json:"seed"`
	V0        float64   `json:"v0"`
	Phi       float64   `json:"phi"`
	NumEvents int       `json:"num_events"`
	Duration  float64   `json:"duration"`
	Pocketed  []string  `json:"pocketed"`
}

// Save writes a completed run and returns its id.
func (s *Store) Save(game string, seed int64, shot *system.System) (string, error) {
	runID := fmt.Sprintf("%s_%d", game, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Game:      game,
		Timestamp: time.Now(),
		Seed:      seed,
		NumEvents: len(shot.Events),
		Duration:  shot.T,
	}
	if shot.Cue != nil {
		meta.V0 = shot.Cue.V0
		meta.Phi = shot.Cue.Phi
	}
	for _, e := range shot.Events {
		if e.Type == events.BallPocket {
			meta.Pocketed = append(meta.Pocketed, e.Agents[0].ID)
		}
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "system.json"), shot); err != nil {
		return "", err
	}
	if err := s.writeEventsCSV(filepath.Join(runDir, "events.csv"), shot); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *Store) writeEventsCSV(path string, shot *system.System) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "type", "agents"}); err != nil {
		return err
	}

	for _, e := range shot.Events {
		ids := make([]string, len(e.Agents))
		for i, a := range e.Agents {
			ids[i] = a.ID
		}
		row := []string{
			strconv.FormatFloat(e.Time, 'f', 9, 64),
			e.Type.String(),
			strings.Join(ids, "|"),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// List returns metadata for every stored run.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

// LoadMetadata reads a single run's metadata.
func (s *Store) LoadMetadata(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSystem reads back the full simulated system for replay or analysis.
func (s *Store) LoadSystem(runID string) (*system.System, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "system.json"))
	if err != nil {
		return nil, err
	}

	var shot system.System
	if err := json.Unmarshal(data, &shot); err != nil {
		return nil, err
	}

	return &shot, nil
}
