package config

// Presets map game type to named shot setups.
var Presets = map[string]map[string]*Config{
	"nineball": {
		"break": {
			Game: "nineball",
			Shot: ShotConfig{V0: 8.0, CueBall: "cue", AimAt: "1"},
			Sim:  SimConfig{MaxEvents: DefaultMaxEvents, Dt: DefaultDt},
		},
		"soft-break": {
			Game: "nineball",
			Shot: ShotConfig{V0: 4.0, CueBall: "cue", AimAt: "1"},
			Sim:  SimConfig{MaxEvents: DefaultMaxEvents, Dt: DefaultDt},
		},
		"jump": {
			Game: "nineball",
			Shot: ShotConfig{V0: 3.0, Theta: 40, CueBall: "cue", AimAt: "1"},
			Sim:  SimConfig{MaxEvents: DefaultMaxEvents, Dt: DefaultDt},
		},
	},
	"eightball": {
		"break": {
			Game: "eightball",
			Shot: ShotConfig{V0: 8.0, CueBall: "cue", AimAt: "1"},
			Sim:  SimConfig{MaxEvents: DefaultMaxEvents, Dt: DefaultDt},
		},
		"draw": {
			Game: "eightball",
			Shot: ShotConfig{V0: 3.0, B: -0.4, CueBall: "cue", AimAt: "1"},
			Sim:  SimConfig{MaxEvents: DefaultMaxEvents, Dt: DefaultDt},
		},
	},
	"threecushion": {
		"open": {
			Game:  "threecushion",
			Table: TableConfig{Kind: "billiard"},
			Shot:  ShotConfig{V0: 3.5, Phi: 80, CueBall: "white"},
			Sim:   SimConfig{MaxEvents: DefaultMaxEvents, Dt: DefaultDt},
		},
	},
	"snooker": {
		"break": {
			Game:  "snooker",
			Table: TableConfig{Kind: "snooker"},
			Shot:  ShotConfig{V0: 6.0, CueBall: "white", AimAt: "red1"},
			Sim:   SimConfig{MaxEvents: DefaultMaxEvents, Dt: DefaultDt},
		},
	},
}

func GetPreset(game, preset string) *Config {
	gamePresets, ok := Presets[game]
	if !ok {
		return nil
	}
	cfg, ok := gamePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(game string) []string {
	gamePresets, ok := Presets[game]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(gamePresets))
	for name := range gamePresets {
		names = append(names, name)
	}
	return names
}
