package flappy

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/loop"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

// RunRecorder stores finished runs. Implemented by the storage package.
type RunRecorder interface {
	RecordRun(score int, played time.Duration) error
	BestScore() (int, error)
}

// GameOverLayer owns the "run has ended" state and draws the overlay.
type GameOverLayer struct {
	score    *Score
	recorder RunRecorder
	logger   *log.Logger
	ended    bool
	played   time.Duration
	best     int
}

// Compile-time check
var _ loop.GameOver = (*GameOverLayer)(nil)

// NewGameOverLayer creates the game-over state for score. recorder and
// logger may be nil.
func NewGameOverLayer(score *Score, recorder RunRecorder, logger *log.Logger) *GameOverLayer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &GameOverLayer{score: score, recorder: recorder, logger: logger}
}

// Ended reports whether the run is over.
func (g *GameOverLayer) Ended() bool {
	return g.ended
}

// Played returns the simulated time played so far.
func (g *GameOverLayer) Played() time.Duration {
	return g.played
}

// Best returns the best score known when the run ended.
func (g *GameOverLayer) Best() int {
	return g.best
}

// SetEnded ends the run. Only the first call records it.
func (g *GameOverLayer) SetEnded() {
	if g.ended {
		return
	}
	g.ended = true
	score := g.score.Value()
	g.best = score

	if g.recorder == nil {
		return
	}
	if err := g.recorder.RecordRun(score, g.played); err != nil {
		g.logger.Warn("cannot record run", "score", score, "error", err)
	}
	best, err := g.recorder.BestScore()
	if err != nil {
		g.logger.Warn("cannot load best score", "error", err)
		return
	}
	g.best = max(best, score)
}

// Draw renders a centred message box once the run has ended.
func (g *GameOverLayer) Draw(f *render.Frame, _ render.Surface, _ *render.Program) *render.Frame {
	if !g.ended {
		return f
	}
	drawCenteredMessage(f,
		"GAME OVER",
		fmt.Sprintf("Score: %d", g.score.Value()),
		fmt.Sprintf("Best: %d", g.best),
		"Press Q to quit",
	)
	return f
}

// Update accumulates played time. The loop passes zero once ended.
func (g *GameOverLayer) Update(dt time.Duration) {
	g.played += dt
}

// drawCenteredMessage draws a message box in the center of the frame.
func drawCenteredMessage(f *render.Frame, lines ...string) {
	w, h := f.Size()

	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2

	f.Panel(core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH), core.ColorBrightWhite, core.ColorBlack)
	top := (h-boxH)/2 + 1
	for i, l := range lines {
		f.TextCentered(top+i, l, core.ColorBrightWhite)
	}
}
