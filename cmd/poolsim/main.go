package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/poolsim/internal/analysis"
	"github.com/san-kum/poolsim/internal/config"
	"github.com/san-kum/poolsim/internal/engine"
	"github.com/san-kum/poolsim/internal/layout"
	"github.com/san-kum/poolsim/internal/objects"
	"github.com/san-kum/poolsim/internal/storage"
	"github.com/san-kum/poolsim/internal/system"
	"github.com/san-kum/poolsim/internal/tui"
	"github.com/san-kum/poolsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	spacing    float64
	// Strike parameters
	v0     float64
	phi    float64
	cueEl  float64
	tipA   float64
	tipB   float64
	aimAt  string
	cut    float64
	// Simulation control
	tFinal    float64
	maxEvents int
	noCts     bool
	dt        float64
	// Output
	watch     bool
	frameRate int
	noSave    bool
	// Plot dimensions
	plotWidth  int
	plotHeight int
	// Ensemble
	trials   int
	speedStd float64
	angleStd float64
	workers  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "poolsim",
		Short: "event-based billiards simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".poolsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [game]",
		Short: "rack, strike and simulate a shot",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShot,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset shot setup")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "rack seed (0 seeds from entropy)")
	runCmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "rack spacing factor")
	runCmd.Flags().Float64Var(&v0, "v0", config.DefaultV0, "cue speed, m/s")
	runCmd.Flags().Float64Var(&phi, "phi", 0, "aim direction, degrees")
	runCmd.Flags().Float64Var(&cueEl, "theta", 0, "cue elevation, degrees")
	runCmd.Flags().Float64Var(&tipA, "a", 0, "tip side offset, fraction of R")
	runCmd.Flags().Float64Var(&tipB, "b", 0, "tip vertical offset, fraction of R")
	runCmd.Flags().StringVar(&aimAt, "aim", "", "aim at this ball instead of using --phi")
	runCmd.Flags().Float64Var(&cut, "cut", 0, "cut angle for --aim, degrees")
	runCmd.Flags().Float64Var(&tFinal, "time", 0, "stop after this many simulated seconds (0 = run to rest)")
	runCmd.Flags().IntVar(&maxEvents, "max-events", config.DefaultMaxEvents, "event count cutoff")
	runCmd.Flags().BoolVar(&noCts, "no-continuize", false, "skip dense trajectory sampling")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "dense trajectory timestep")
	runCmd.Flags().BoolVar(&watch, "watch", false, "render the shot in the terminal as it replays")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --watch")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "chart energy and ball speeds for a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 60, "chart width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 8, "chart height")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "interactive replay of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [run_id]",
		Short: "per-ball and per-event statistics for a run",
		Args:  cobra.ExactArgs(1),
		RunE:  statsRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [game]",
		Short: "re-simulate a shot under execution noise",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	ensembleCmd.Flags().StringVar(&preset, "preset", "", "use preset shot setup")
	ensembleCmd.Flags().Int64Var(&seed, "seed", 0, "rack and noise seed")
	ensembleCmd.Flags().Float64Var(&v0, "v0", config.DefaultV0, "cue speed, m/s")
	ensembleCmd.Flags().Float64Var(&phi, "phi", 0, "aim direction, degrees")
	ensembleCmd.Flags().StringVar(&aimAt, "aim", "", "aim at this ball instead of using --phi")
	ensembleCmd.Flags().Float64Var(&cut, "cut", 0, "cut angle for --aim, degrees")
	ensembleCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	ensembleCmd.Flags().Float64Var(&speedStd, "speed-noise", 0.1, "uniform half-width on v0, m/s")
	ensembleCmd.Flags().Float64Var(&angleStd, "angle-noise", 0.2, "uniform half-width on phi, degrees")
	ensembleCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = NumCPU)")

	presetsCmd := &cobra.Command{
		Use:   "presets [game]",
		Short: "list available presets for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for game: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, replayCmd, statsCmd, exportCmd, ensembleCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig layers defaults, preset, config file and flags, in that
// order. Flags only override when explicitly set.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Game = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Game, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Game))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Game = args[0]
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Rack.Seed = seed
	}
	if flags.Changed("spacing") {
		cfg.Rack.SpacingFactor = spacing
	}
	if flags.Changed("v0") {
		cfg.Shot.V0 = v0
	}
	if flags.Changed("phi") {
		cfg.Shot.Phi = phi
	}
	if flags.Changed("theta") {
		cfg.Shot.Theta = cueEl
	}
	if flags.Changed("a") {
		cfg.Shot.A = tipA
	}
	if flags.Changed("b") {
		cfg.Shot.B = tipB
	}
	if flags.Changed("aim") {
		cfg.Shot.AimAt = aimAt
	}
	if flags.Changed("cut") {
		cfg.Shot.Cut = cut
	}
	if flags.Changed("time") {
		cfg.Sim.TFinal = tFinal
	}
	if flags.Changed("max-events") {
		cfg.Sim.MaxEvents = maxEvents
	}
	if flags.Changed("dt") {
		cfg.Sim.Dt = dt
	}

	if cfg.Rack.Seed == 0 {
		cfg.Rack.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// buildShot racks the balls and aims the cue but does not simulate.
func buildShot(cfg *config.Config) (*system.System, error) {
	table, err := cfg.BuildTable()
	if err != nil {
		return nil, err
	}

	balls, err := layout.Rack(cfg.Game, table, layout.Options{
		Params:        cfg.BallParams(),
		SpacingFactor: cfg.Rack.SpacingFactor,
		Seed:          cfg.Rack.Seed,
	})
	if err != nil {
		return nil, err
	}

	cueBall := cfg.Shot.CueBall
	if cueBall == "" {
		cueBall = "cue"
	}
	cue := objects.NewCue()
	cue.BallID = cueBall

	shot, err := system.New(table, cue, balls)
	if err != nil {
		return nil, err
	}

	if err := shot.Strike(cfg.Shot.V0, cfg.Shot.Phi, cfg.Shot.Theta, cfg.Shot.A, cfg.Shot.B); err != nil {
		return nil, err
	}
	if cfg.Shot.AimAt != "" {
		if err := shot.AimAtBall(cfg.Shot.AimAt, cfg.Shot.Cut); err != nil {
			return nil, err
		}
	}

	return shot, nil
}

func simOptions(cfg *config.Config) engine.Options {
	return engine.Options{
		TFinal:     cfg.Sim.TFinal,
		MaxEvents:  cfg.Sim.MaxEvents,
		Continuous: !noCts,
		Dt:         cfg.Sim.Dt,
	}
}

func runShot(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	shot, err := buildShot(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("simulating %s shot (seed %d)...\n", cfg.Game, cfg.Rack.Seed)
	start := time.Now()
	engine.Simulate(shot, simOptions(cfg))
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("events: %d\n", len(shot.Events))
	fmt.Printf("shot duration: %.3fs\n", shot.T)

	var pocketed []string
	for _, p := range shot.Table.Pockets {
		pocketed = append(pocketed, p.Contains...)
	}
	if len(pocketed) > 0 {
		fmt.Printf("pocketed: %v\n", pocketed)
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Game, cfg.Rack.Seed, shot)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if watch {
		if noCts {
			return fmt.Errorf("--watch needs dense trajectories; drop --no-continuize")
		}
		return tui.NewLiveRenderer(frameRate).Play(shot, 1)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGAME\tTIME\tDURATION\tEVENTS\tV0\tPOCKETED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%d\t%.2f\t%d\n",
			run.ID,
			run.Game,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.NumEvents,
			run.V0,
			len(run.Pocketed),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	shot, err := st.LoadSystem(args[0])
	if err != nil {
		return err
	}

	energy, err := viz.EnergyPlot(shot, plotWidth, plotHeight)
	if err != nil {
		return err
	}
	fmt.Println(energy)
	fmt.Println()

	speeds, err := viz.SpeedPlot(shot, plotWidth, plotHeight)
	if err != nil {
		return err
	}
	fmt.Print(speeds)
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	shot, err := st.LoadSystem(args[0])
	if err != nil {
		return err
	}
	return viz.Run(shot)
}

func statsRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	shot, err := st.LoadSystem(args[0])
	if err != nil {
		return err
	}

	stats := analysis.Summarize(shot)
	fmt.Printf("duration: %.3fs  events: %d\n", stats.Duration, stats.NumEvents)
	if stats.FirstHitID != "" {
		fmt.Printf("first contact: %s\n", stats.FirstHitID)
	}

	fmt.Println("\nevents:")
	for name, n := range stats.EventCounts {
		fmt.Printf("  %-20s %d\n", name, n)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nBALL\tDISTANCE\tMAX SPEED\tCUSHIONS\tPOCKETED")
	for _, id := range stats.BallIDs() {
		b := stats.Balls[id]
		fmt.Fprintf(w, "%s\t%.3fm\t%.2fm/s\t%d\t%v\n",
			b.ID, b.Distance, b.MaxSpeed, b.CushionHits, b.Pocketed)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.LoadMetadata(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	shot, err := buildShot(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %d trials of %s shot...\n", trials, cfg.Game)
	start := time.Now()

	results, err := engine.RunEnsemble(context.Background(), shot, engine.EnsembleConfig{
		NumTrials: trials,
		SpeedStd:  speedStd,
		AngleStd:  angleStd,
		Seed:      cfg.Rack.Seed,
		Workers:   workers,
		Options:   simOptions(cfg),
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	pocketCounts := make(map[string]int)
	var anyPocket int
	for _, r := range results {
		if len(r.Pocketed) > 0 {
			anyPocket++
		}
		for _, id := range r.Pocketed {
			pocketCounts[id]++
		}
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("trials with a pocketed ball: %d/%d (%.1f%%)\n",
		anyPocket, len(results), 100*float64(anyPocket)/float64(len(results)))
	for id, n := range pocketCounts {
		fmt.Printf("  %s: %d\n", id, n)
	}
	return nil
}
