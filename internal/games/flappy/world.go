package flappy

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/layer"
	"github.com/vovakirdan/tui-flappy/internal/loop"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

// World holds every piece of one run.
type World struct {
	Background *layer.ScrollingLayer
	Base       *layer.ScrollingLayer
	Bird       *Bird
	Pipes      *PipeSystem
	Score      *Score
	HUD        *ScoreLayer
	GameOver   *GameOverLayer
}

// WorldOption configures NewWorld.
type WorldOption func(*worldOptions)

type worldOptions struct {
	recorder RunRecorder
	logger   *log.Logger
}

// WithRecorder records the run when it ends.
func WithRecorder(r RunRecorder) WorldOption {
	return func(o *worldOptions) { o.recorder = r }
}

// WithLogger sets the logger used by the game-over state.
func WithLogger(l *log.Logger) WorldOption {
	return func(o *worldOptions) { o.logger = l }
}

// NewWorld builds the layers for a run from cfg. The same seed always
// yields the same pipe course.
func NewWorld(cfg config.FlappyConfig, seed int64, opts ...WorldOption) (*World, error) {
	var o worldOptions
	for _, opt := range opts {
		opt(&o)
	}

	bg, err := layer.New(render.NewTexture(SkySprite, cfg.Background.TileWidth, cfg.Background.Height),
		cfg.Background.TileWidth, cfg.Background.Speed)
	if err != nil {
		return nil, fmt.Errorf("flappy: background: %w", err)
	}
	base, err := layer.New(render.NewTexture(BaseSprite, cfg.Base.TileWidth, cfg.Base.Height),
		cfg.Base.TileWidth, cfg.Base.Speed)
	if err != nil {
		return nil, fmt.Errorf("flappy: base: %w", err)
	}

	score := &Score{}
	diff := config.NewDifficultyManager(cfg.Difficulty)
	floorY := -1 + cfg.Base.Height

	return &World{
		Background: bg,
		Base:       base,
		Bird:       NewBird(cfg.Bird),
		Pipes:      NewPipeSystem(cfg.Pipes, floorY, score, diff, seed),
		Score:      score,
		HUD:        NewScoreLayer(score),
		GameOver:   NewGameOverLayer(score, o.recorder, o.logger),
	}, nil
}

// Scene returns the loop scene, back to front: sky, pipes, ground, bird,
// score and the game-over overlay.
func (w *World) Scene() loop.Scene {
	return loop.Scene{
		Layers: []render.Drawable{
			w.Background,
			w.Pipes,
			w.Base,
			w.Bird,
			w.HUD,
			w.GameOver,
		},
		Bird:      w.Bird,
		Obstacles: w.Pipes,
		GameOver:  w.GameOver,
	}
}
