package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseFlappy(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFlappyConfig()) {
		t.Errorf("embedded defaults differ from DefaultFlappyConfig():\n%+v\n%+v", cfg, DefaultFlappyConfig())
	}
	if cfg.Loop.TickInterval != 20*time.Millisecond {
		t.Errorf("tick_interval = %v, expected 20ms", cfg.Loop.TickInterval)
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	data := "background:\n  tile_width: 0.7\nloop:\n  tick_interval: 33ms\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Background.TileWidth != 0.7 {
		t.Errorf("tile_width = %v, expected 0.7", cfg.Background.TileWidth)
	}
	if cfg.Loop.TickInterval != 33*time.Millisecond {
		t.Errorf("tick_interval = %v, expected 33ms", cfg.Loop.TickInterval)
	}
	// Keys not in the file keep their defaults
	if cfg.Base.Speed != DefaultFlappyConfig().Base.Speed {
		t.Errorf("base.speed = %v, expected default", cfg.Base.Speed)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadFlappy(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("base:\n  tile_width: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFlappy(path)
	if err == nil || !strings.Contains(err.Error(), "base.tile_width") {
		t.Errorf("expected tile width validation error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
	}{
		{"zero tick", func(c *FlappyConfig) { c.Loop.TickInterval = 0 }},
		{"unknown color", func(c *FlappyConfig) { c.Loop.ClearColor = "plaid" }},
		{"negative tile", func(c *FlappyConfig) { c.Background.TileWidth = -1 }},
		{"tall base", func(c *FlappyConfig) { c.Base.Height = 3 }},
		{"inverted gaps", func(c *FlappyConfig) { c.Pipes.MinGap, c.Pipes.MaxGap = 0.8, 0.4 }},
		{"tight spacing", func(c *FlappyConfig) { c.Pipes.Spacing = c.Pipes.Width }},
	}

	if err := DefaultFlappyConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultFlappyConfig()
	ApplyFlappyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v", cfg.Difficulty)
	}

	ApplyFlappyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	before := cfg
	ApplyFlappyPreset(&cfg, "")
	if !reflect.DeepEqual(before, cfg) {
		t.Error("empty preset should not change the config")
	}

	if _, err := ParsePreset("brutal"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := DefaultFlappyConfig().Marshal()
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !strings.Contains(string(data), "tick_interval: 20ms") {
		t.Errorf("durations should be written as strings:\n%s", data)
	}
	cfg, err := parseFlappy(data)
	if err != nil {
		t.Fatalf("marshalled config does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFlappyConfig()) {
		t.Error("round trip changed the config")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultFlappyConfig().Difficulty
	d := NewDifficultyManager(cfg)

	if lvl := d.Level(0, 0); lvl != 0 {
		t.Errorf("Level at start = %v, expected 0", lvl)
	}
	if lvl := d.Level(15, 0); lvl != 0.5 {
		t.Errorf("Level at half score = %v, expected 0.5", lvl)
	}
	if lvl := d.Level(1000, 0); lvl != 1 {
		t.Errorf("Level should clamp at 1, got %v", lvl)
	}

	if gap := d.GapSize(0.7, 30, 0); math.Abs(gap-0.45) > 1e-9 {
		t.Errorf("GapSize at max = %v, expected 0.45", gap)
	}

	d.SetEnabled(false)
	d.SetInitialLevel(0.3)
	if lvl := d.Level(1000, 1000); lvl != 0.3 {
		t.Errorf("disabled progression should stay at initial level, got %v", lvl)
	}
	d.SetInitialLevel(1.7)
	if lvl := d.Level(0, 0); lvl != 1 {
		t.Errorf("initial level should clamp to 1, got %v", lvl)
	}

	timed := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 60},
		Scaling:     ScalingConfig{SpeedMultiplier: 1},
	})
	if s := timed.Speed(0.2, 0, 30); math.Abs(s-0.3) > 1e-9 {
		t.Errorf("Speed at half time = %v, expected 0.3", s)
	}
}
