package flappy

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

// Score counts pipes passed in the current run.
type Score struct {
	value int
}

// Add increases the score by n.
func (s *Score) Add(n int) {
	s.value += n
}

// Value returns the current score.
func (s *Score) Value() int {
	return s.value
}

// ScoreLayer draws the score in the top row.
type ScoreLayer struct {
	score *Score
}

// NewScoreLayer creates a HUD layer for score.
func NewScoreLayer(score *Score) *ScoreLayer {
	return &ScoreLayer{score: score}
}

// Draw writes the score text.
func (l *ScoreLayer) Draw(f *render.Frame, _ render.Surface, _ *render.Program) *render.Frame {
	text := fmt.Sprintf(" Score: %d ", l.score.Value())
	for i, r := range []rune(text) {
		f.Plot(2+i, 0, r, core.ColorBrightWhite, core.ColorBlack)
	}
	return f
}

// Update is a no-op; the score only changes through gameplay checks.
func (l *ScoreLayer) Update(time.Duration) {}
