package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the hard-coded default configuration.
// It matches defaults/flappy.yaml.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Loop: LoopConfig{
			TickInterval: 20 * time.Millisecond,
			ClearColor:   "red",
		},
		Background: LayerConfig{
			TileWidth: 1.4,
			Speed:     0.05,
			Height:    2.0,
		},
		Base: LayerConfig{
			TileWidth: 1.4,
			Speed:     0.2,
			Height:    0.25,
		},
		Bird: BirdConfig{
			X:            -0.4,
			Width:        0.1,
			Height:       0.16,
			Gravity:      3.0,
			Impulse:      1.1,
			MaxFallSpeed: 2.0,
		},
		Pipes: PipesConfig{
			Width:   0.2,
			Spacing: 0.9,
			Speed:   0.2,
			MinGap:  0.45,
			MaxGap:  0.7,
			Margin:  0.15,
			Noise: NoiseConfig{
				Alpha:   2,
				Beta:    2,
				Octaves: 3,
				Scale:   0.35,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 30,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.0,
				GapReduction:     0.25,
				SpacingReduction: 0.2,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
