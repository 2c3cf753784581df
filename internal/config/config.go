// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// FlappyConfig contains all configuration for the game.
// Distances are in logical units of the [-1, 1] viewport, speeds in logical
// units per second.
type FlappyConfig struct {
	Loop       LoopConfig       `yaml:"loop"`
	Background LayerConfig      `yaml:"background"`
	Base       LayerConfig      `yaml:"base"`
	Bird       BirdConfig       `yaml:"bird"`
	Pipes      PipesConfig      `yaml:"pipes"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// LoopConfig defines game loop timing and frame setup.
type LoopConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	ClearColor   string        `yaml:"clear_color"`
}

// LayerConfig defines one scrolling band.
type LayerConfig struct {
	TileWidth float64 `yaml:"tile_width"`
	Speed     float64 `yaml:"speed"`
	Height    float64 `yaml:"height"`
}

// BirdConfig defines the bird's size and motion.
type BirdConfig struct {
	X            float64 `yaml:"x"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Gravity      float64 `yaml:"gravity"`
	Impulse      float64 `yaml:"impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// PipesConfig defines obstacle parameters.
type PipesConfig struct {
	Width   float64     `yaml:"width"`
	Spacing float64     `yaml:"spacing"`
	Speed   float64     `yaml:"speed"`
	MinGap  float64     `yaml:"min_gap"`
	MaxGap  float64     `yaml:"max_gap"`
	Margin  float64     `yaml:"margin"` // Minimum pipe length above and below the gap
	Noise   NoiseConfig `yaml:"noise"`
}

// NoiseConfig shapes the Perlin noise that places the gaps.
type NoiseConfig struct {
	Alpha   float64 `yaml:"alpha"`
	Beta    float64 `yaml:"beta"`
	Octaves int32   `yaml:"octaves"`
	Scale   float64 `yaml:"scale"` // Noise-space step between consecutive pipes
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to pipe speed at max difficulty
	GapReduction     float64 `yaml:"gap_reduction"`     // Gap size reduction at max difficulty
	SpacingReduction float64 `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
}

// ClearColor resolves the configured clear color.
func (c FlappyConfig) ClearColor() (core.Color, error) {
	return core.ParseColor(c.Loop.ClearColor)
}

// Validate checks the configuration for values the game cannot run with.
func (c FlappyConfig) Validate() error {
	var errs []error
	if c.Loop.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("loop.tick_interval must be > 0, got %v", c.Loop.TickInterval))
	}
	if _, err := c.ClearColor(); err != nil {
		errs = append(errs, fmt.Errorf("loop.clear_color: %w", err))
	}
	errs = append(errs, c.Background.validate("background")...)
	errs = append(errs, c.Base.validate("base")...)
	if c.Bird.Width <= 0 || c.Bird.Height <= 0 {
		errs = append(errs, errors.New("bird.width and bird.height must be > 0"))
	}
	if c.Bird.Gravity < 0 || c.Bird.MaxFallSpeed <= 0 {
		errs = append(errs, errors.New("bird.gravity must be >= 0 and bird.max_fall_speed > 0"))
	}
	if c.Pipes.Width <= 0 {
		errs = append(errs, errors.New("pipes.width must be > 0"))
	}
	if c.Pipes.Spacing <= c.Pipes.Width {
		errs = append(errs, errors.New("pipes.spacing must be larger than pipes.width"))
	}
	if c.Pipes.MinGap <= 0 || c.Pipes.MinGap > c.Pipes.MaxGap {
		errs = append(errs, fmt.Errorf("pipes gap range [%v, %v] is invalid", c.Pipes.MinGap, c.Pipes.MaxGap))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid flappy config: %w", err)
	}
	return nil
}

func (l LayerConfig) validate(name string) []error {
	var errs []error
	if l.TileWidth <= 0 {
		errs = append(errs, fmt.Errorf("%s.tile_width must be > 0, got %v", name, l.TileWidth))
	}
	if l.Height <= 0 || l.Height > 2 {
		errs = append(errs, fmt.Errorf("%s.height must be in (0, 2], got %v", name, l.Height))
	}
	return errs
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name means "keep the config".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
