package main

import (
	"testing"

	"github.com/san-kum/poolsim/internal/config"
)

func TestBuildShot_ValidatesAimedStrikes(t *testing.T) {
	base := func() *config.Config {
		cfg := config.DefaultConfig()
		cfg.Rack.Seed = 1
		cfg.Shot.AimAt = "1"
		return cfg
	}

	// Strike validation applies to aimed shots, not just explicit phi.
	cfg := base()
	cfg.Shot.V0 = -1
	if _, err := buildShot(cfg); err == nil {
		t.Error("negative speed accepted on the aimed path")
	}

	cfg = base()
	cfg.Shot.A, cfg.Shot.B = 0.7, 0.8
	if _, err := buildShot(cfg); err == nil {
		t.Error("off-ball tip offset accepted on the aimed path")
	}

	cfg = base()
	cfg.Shot.B = 0.2
	shot, err := buildShot(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if shot.Cue.V0 != cfg.Shot.V0 || shot.Cue.B != 0.2 {
		t.Errorf("cue = %+v, want the configured strike", shot.Cue)
	}
}
