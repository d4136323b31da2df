package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/poolsim/internal/objects"
)

const (
	DefaultDt        = 0.01
	DefaultV0        = 2.0
	DefaultGame      = "nineball"
	DefaultSpacing   = 1e-3
	DefaultMaxEvents = 5000
)

type Config struct {
	Game  string      `yaml:"game"`
	Table TableConfig `yaml:"table"`
	Ball  BallConfig  `yaml:"ball"`
	Shot  ShotConfig  `yaml:"shot"`
	Rack  RackConfig  `yaml:"rack"`
	Sim   SimConfig   `yaml:"sim"`
}

type TableConfig struct {
	// Kind is "pocket", "snooker" or "billiard".
	Kind string  `yaml:"kind"`
	L    float64 `yaml:"l"`
	W    float64 `yaml:"w"`
}

type BallConfig struct {
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
	US     float64 `yaml:"u_s"`
	UR     float64 `yaml:"u_r"`
	EC     float64 `yaml:"e_c"`
	FC     float64 `yaml:"f_c"`
	ET     float64 `yaml:"e_t"`
}

type ShotConfig struct {
	V0      float64 `yaml:"v0"`
	Phi     float64 `yaml:"phi"`
	Theta   float64 `yaml:"theta"`
	A       float64 `yaml:"a"`
	B       float64 `yaml:"b"`
	CueBall string  `yaml:"cue_ball"`
	AimAt   string  `yaml:"aim_at"`
	Cut     float64 `yaml:"cut"`
}

type RackConfig struct {
	SpacingFactor float64 `yaml:"spacing_factor"`
	Seed          int64   `yaml:"seed"`
}

type SimConfig struct {
	TFinal     float64 `yaml:"t_final"`
	MaxEvents  int     `yaml:"max_events"`
	Continuous bool    `yaml:"continuous"`
	Dt         float64 `yaml:"dt"`
}

func DefaultConfig() *Config {
	p := objects.DefaultBallParams()
	return &Config{
		Game: DefaultGame,
		Table: TableConfig{
			Kind: "pocket",
		},
		Ball: BallConfig{
			Radius: p.R,
			Mass:   p.M,
			US:     p.US,
			UR:     p.UR,
			EC:     p.EC,
			FC:     p.FC,
			ET:     p.ET,
		},
		Shot: ShotConfig{
			V0:      DefaultV0,
			CueBall: "cue",
		},
		Rack: RackConfig{
			SpacingFactor: DefaultSpacing,
		},
		Sim: SimConfig{
			MaxEvents: DefaultMaxEvents,
			Dt:        DefaultDt,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BallParams realizes the ball section into physics parameters, filling
// unset fields with defaults.
func (c *Config) BallParams() objects.BallParams {
	p := objects.DefaultBallParams()
	if c.Ball.Radius > 0 {
		p.R = c.Ball.Radius
	}
	if c.Ball.Mass > 0 {
		p.M = c.Ball.Mass
	}
	if c.Ball.US > 0 {
		p.US = c.Ball.US
	}
	if c.Ball.UR > 0 {
		p.UR = c.Ball.UR
	}
	if c.Ball.EC > 0 {
		p.EC = c.Ball.EC
	}
	if c.Ball.FC > 0 {
		p.FC = c.Ball.FC
	}
	if c.Ball.ET > 0 {
		p.ET = c.Ball.ET
	}
	return p
}

// BuildTable realizes the table section into geometry.
func (c *Config) BuildTable() (*objects.Table, error) {
	switch c.Table.Kind {
	case "", "pocket":
		specs := objects.DefaultPocketTableSpecs()
		if c.Table.L > 0 {
			specs.L = c.Table.L
		}
		if c.Table.W > 0 {
			specs.W = c.Table.W
		}
		return objects.NewPocketTable(specs), nil
	case "snooker":
		specs := objects.SnookerTableSpecs()
		if c.Table.L > 0 {
			specs.L = c.Table.L
		}
		if c.Table.W > 0 {
			specs.W = c.Table.W
		}
		return objects.NewPocketTable(specs), nil
	case "billiard":
		specs := objects.DefaultBilliardTableSpecs()
		if c.Table.L > 0 {
			specs.L = c.Table.L
		}
		if c.Table.W > 0 {
			specs.W = c.Table.W
		}
		return objects.NewBilliardTable(specs), nil
	}
	return nil, fmt.Errorf("unknown table kind %q", c.Table.Kind)
}
