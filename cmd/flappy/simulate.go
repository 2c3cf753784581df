package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/loop"
	"github.com/vovakirdan/tui-flappy/internal/render"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagTicks     int
	flagFlapEvery int
	flagFast      bool
	flagWidth     int
	flagHeight    int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game with an autopilot",
	Long: `Run the game loop without a terminal UI and print the last frame.

The autopilot flaps every --flap-every ticks, or steers towards the next
gap when --flap-every is 0. With --fast the loop runs on a simulated clock
and finishes as quickly as the CPU allows; otherwise it runs in real time.

Examples:
  flappy simulate --ticks 3000 --fast
  flappy simulate --flap-every 15 --seed 42
  flappy simulate --fast --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 1500, "Number of ticks to run")
	simulateCmd.Flags().IntVar(&flagFlapEvery, "flap-every", 0, "Flap every N ticks (0 = steer towards the gap)")
	simulateCmd.Flags().BoolVar(&flagFast, "fast", false, "Use a simulated clock instead of real time")
	simulateCmd.Flags().IntVar(&flagWidth, "width", 80, "Frame width in cells")
	simulateCmd.Flags().IntVar(&flagHeight, "height", 24, "Frame height in cells")
}

// autopilot is an input source that plays the game and closes it after a
// fixed number of ticks.
type autopilot struct {
	world     *flappy.World
	ticks     int
	flapEvery int
	polled    int
}

// Poll implements loop.InputSource.
func (a *autopilot) Poll() []loop.Event {
	defer func() { a.polled++ }()

	if a.polled >= a.ticks {
		return []loop.Event{loop.Close()}
	}
	if a.shouldFlap() {
		return []loop.Event{loop.KeyDown("space")}
	}
	return nil
}

func (a *autopilot) shouldFlap() bool {
	if a.flapEvery > 0 {
		return a.polled%a.flapEvery == 0
	}

	// Aim for the centre of the next gap, or the middle of the sky
	bird := a.world.Bird.Bounds()
	target := (a.world.Pipes.FloorY() + 1) / 2
	for _, p := range a.world.Pipes.Pipes() {
		if !p.Passed {
			target = p.GapY
			break
		}
	}
	return bird.MinY < target-bird.Height()/2 && a.world.Bird.Velocity() <= 0
}

// simOptions are the simulate flags.
type simOptions struct {
	ticks     int
	flapEvery int
	fast      bool
	width     int
	height    int
	seed      int64
}

func runSimulate(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(os.Stderr, "flappy-sim")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	opts := simOptions{
		ticks:     flagTicks,
		flapEvery: flagFlapEvery,
		fast:      flagFast,
		width:     flagWidth,
		height:    flagHeight,
		seed:      flagSeed,
	}
	err = simulate(ctx, cfg, opts, logger, os.Stdout)
	stop()
	if err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// simulate plays one autopilot game and writes the last frame to out.
func simulate(ctx context.Context, cfg config.FlappyConfig, opts simOptions, logger *log.Logger, out io.Writer) error {
	clearColor, err := cfg.ClearColor()
	if err != nil {
		return err
	}

	store, err := storage.Open()
	if err != nil {
		return fmt.Errorf("opening scoreboard: %w", err)
	}
	defer store.Close()

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	world, err := flappy.NewWorld(cfg, seed,
		flappy.WithRecorder(store.Recorder("autopilot")),
		flappy.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	var clock loop.Clock = loop.SystemClock{}
	if opts.fast {
		clock = loop.NewManualClock(time.Now())
	}

	surface := render.NewBufferSurface(opts.width, opts.height)
	l, err := loop.New(surface, render.NewProgram(opts.width, opts.height), world.Scene(),
		loop.WithClock(clock),
		loop.WithPeriod(cfg.Loop.TickInterval),
		loop.WithClearColor(clearColor),
		loop.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("creating loop: %w", err)
	}

	logger.Info("simulation started", "seed", seed, "ticks", opts.ticks, "fast", opts.fast)
	src := &autopilot{world: world, ticks: opts.ticks, flapEvery: opts.flapEvery}
	if err := l.Run(ctx, src); err != nil {
		return err
	}

	best, err := store.BestScore()
	if err != nil {
		return err
	}
	logger.Info("simulation finished",
		"ticks", l.Ticks(),
		"score", world.Score.Value(),
		"best", best,
		"ended", world.GameOver.Ended(),
		"played", world.GameOver.Played(),
	)
	if last := surface.Last(); last != nil {
		fmt.Fprintln(out, last.String())
	}
	return nil
}
