// flappy is a Flappy Bird-style side-scroller for the terminal.
//
// Usage:
//
//	flappy play              - Play in this terminal
//	flappy serve             - Start SSH server for remote play
//	flappy simulate          - Run a headless game with an autopilot
//	flappy config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--seed <value>        - Set seed for a reproducible pipe course
//	--tick <duration>     - Override the loop period (default from config: 20ms)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagTick       time.Duration
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - a side-scroller in your terminal",
	Long: `Flappy is a terminal side-scroller: flap through the gaps between
the pipes and don't touch the ground.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  simulate  - Run a headless game with an autopilot
  config    - Print the effective configuration

Examples:
  flappy play
  flappy play --difficulty hard
  flappy serve --ssh :2222
  flappy simulate --ticks 3000 --fast
  flappy config --config ./my-flappy.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Pipe course seed (0 = random based on time)")
	rootCmd.PersistentFlags().DurationVar(&flagTick, "tick", 0, "Loop period override, e.g. 16ms (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the game config and applies the global flags.
func loadConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return config.FlappyConfig{}, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	config.ApplyFlappyPreset(&cfg, preset)

	if flagTick < 0 {
		return config.FlappyConfig{}, fmt.Errorf("--tick must be positive, got %v", flagTick)
	}
	if flagTick > 0 {
		cfg.Loop.TickInterval = flagTick
	}
	return cfg, nil
}

// runtimeConfig builds the runtime config for a screen of w x h cells.
// Unknown sizes (zero) fall back to the core defaults.
func runtimeConfig(cfg config.FlappyConfig, w, h int) core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w > 0 && h > 0 {
		rt.ScreenW, rt.ScreenH = w, h
	}
	if cfg.Loop.TickInterval > 0 {
		rt.TickInterval = cfg.Loop.TickInterval
	}
	rt.Seed = flagSeed
	return rt
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}
