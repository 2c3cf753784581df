package flappy

import (
	"math"
	"time"

	"github.com/aquilax/go-perlin"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/loop"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

// capHeight is the logical height of a pipe cap, about one row on a
// 24-row terminal.
const capHeight = 0.08

// Pipe represents a vertical obstacle with a gap for the bird to pass through.
type Pipe struct {
	X      float64 // Left edge
	GapY   float64 // Centre of the gap
	Gap    float64 // Height of the passable gap
	Passed bool    // Whether the bird has passed this pipe (for scoring)
}

// GapTop returns the y coordinate of the top of the gap.
func (p Pipe) GapTop() float64 {
	return p.GapY + p.Gap/2
}

// GapBottom returns the y coordinate of the bottom of the gap.
func (p Pipe) GapBottom() float64 {
	return p.GapY - p.Gap/2
}

// TopBox returns the collision box of the upper pipe section.
func (p Pipe) TopBox(width float64) core.Box {
	return core.Box{MinX: p.X, MinY: p.GapTop(), MaxX: p.X + width, MaxY: math.Inf(1)}
}

// BottomBox returns the collision box of the lower pipe section.
func (p Pipe) BottomBox(width float64) core.Box {
	return core.Box{MinX: p.X, MinY: math.Inf(-1), MaxX: p.X + width, MaxY: p.GapBottom()}
}

// PipeSystem handles spawning, movement, and removal of pipes, and the
// gameplay checks against them.
type PipeSystem struct {
	cfg        config.PipesConfig
	floorY     float64
	score      *Score
	difficulty *config.DifficultyManager
	noise      *perlin.Perlin
	noiseX     float64
	pipes      []Pipe
	elapsed    float64 // simulated seconds, for time-based difficulty

	body      *render.Texture
	capTop    *render.Texture
	capBottom *render.Texture
}

// Compile-time check
var _ loop.Obstacles = (*PipeSystem)(nil)

// NewPipeSystem creates a pipe system. floorY is the top of the ground;
// touching it counts as a collision. The first pipe spawns just past the
// right edge.
func NewPipeSystem(cfg config.PipesConfig, floorY float64, score *Score, diff *config.DifficultyManager, seed int64) *PipeSystem {
	ps := &PipeSystem{
		cfg:        cfg,
		floorY:     floorY,
		score:      score,
		difficulty: diff,
		noise:      perlin.NewPerlin(cfg.Noise.Alpha, cfg.Noise.Beta, cfg.Noise.Octaves, seed),
		pipes:      make([]Pipe, 0, 8),
		body:       render.NewTexture(PipeBodySprite, cfg.Width, 0),
		capTop:     render.NewTexture(PipeCapTopSprite, cfg.Width, capHeight),
		capBottom:  render.NewTexture(PipeCapBottomSprite, cfg.Width, capHeight),
	}
	ps.spawn(1)
	return ps
}

// Pipes returns the current list of pipes, left to right.
func (ps *PipeSystem) Pipes() []Pipe {
	return ps.pipes
}

// Elapsed returns the simulated time in seconds.
func (ps *PipeSystem) Elapsed() float64 {
	return ps.elapsed
}

// FloorY returns the top of the ground.
func (ps *PipeSystem) FloorY() float64 {
	return ps.floorY
}

// Draw renders every pipe: body sections first, then the caps at the gap.
func (ps *PipeSystem) Draw(f *render.Frame, _ render.Surface, p *render.Program) *render.Frame {
	for _, pipe := range ps.pipes {
		if top := pipe.GapTop(); top < 1 {
			ps.body.SetPos(pipe.X, 1)
			ps.body.SetSize(ps.cfg.Width, 1-top)
			f = ps.body.Draw(f, p)
			ps.capTop.SetPos(pipe.X, top+capHeight)
			f = ps.capTop.Draw(f, p)
		}
		if bottom := pipe.GapBottom(); bottom > -1 {
			ps.body.SetPos(pipe.X, bottom)
			ps.body.SetSize(ps.cfg.Width, bottom+1)
			f = ps.body.Draw(f, p)
			ps.capBottom.SetPos(pipe.X, bottom)
			f = ps.capBottom.Draw(f, p)
		}
	}
	return f
}

// Update moves pipes left, recycles the ones past the left edge and spawns
// new ones as needed.
func (ps *PipeSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	if secs <= 0 {
		return
	}
	ps.elapsed += secs
	score := ps.score.Value()

	// Calculate current speed based on difficulty
	speed := ps.difficulty.Speed(ps.cfg.Speed, score, ps.elapsed)
	for i := range ps.pipes {
		ps.pipes[i].X -= speed * secs
	}

	// Remove pipes that have moved off the left side
	valid := ps.pipes[:0]
	for _, p := range ps.pipes {
		if p.X+ps.cfg.Width > -1 {
			valid = append(valid, p)
		}
	}
	ps.pipes = valid

	// Spawn new pipe if needed
	spacing := math.Max(ps.difficulty.Spacing(ps.cfg.Spacing, score, ps.elapsed), 2*ps.cfg.Width)
	if len(ps.pipes) == 0 {
		ps.spawn(1)
	} else if next := ps.pipes[len(ps.pipes)-1].X + spacing; next <= 1 {
		ps.spawn(next)
	}
}

// spawn appends a pipe at x. The gap centre follows 1D Perlin noise so
// consecutive gaps drift instead of jumping.
func (ps *PipeSystem) spawn(x float64) {
	score := ps.score.Value()

	// Calculate gap size based on difficulty
	gap := ps.difficulty.GapSize(ps.cfg.MaxGap, score, ps.elapsed)
	gap = core.ClampF(gap, ps.cfg.MinGap, ps.cfg.MaxGap)

	// Calculate valid range for the gap centre
	lo := ps.floorY + ps.cfg.Margin + gap/2
	hi := 1 - ps.cfg.Margin - gap/2
	if hi < lo {
		lo, hi = (lo+hi)/2, (lo+hi)/2 // Edge case for a very tall gap
	}

	// Perlin output rarely leaves [-0.5, 0.5]
	ps.noiseX += ps.cfg.Noise.Scale
	n := core.ClampF(2*ps.noise.Noise1D(ps.noiseX), -1, 1)

	ps.pipes = append(ps.pipes, Pipe{
		X:    x,
		GapY: (lo+hi)/2 + n*(hi-lo)/2,
		Gap:  gap,
	})
}

// CheckCollision reports whether b touches the ground or overlaps a pipe.
func (ps *PipeSystem) CheckCollision(b loop.Body) bool {
	box := b.Bounds()
	if box.MinY <= ps.floorY {
		return true
	}
	for _, p := range ps.pipes {
		if box.Intersects(p.TopBox(ps.cfg.Width)) || box.Intersects(p.BottomBox(ps.cfg.Width)) {
			return true
		}
	}
	return false
}

// CheckPoints scores every pipe whose right edge is fully behind b.
// Each pipe scores once.
func (ps *PipeSystem) CheckPoints(b loop.Body) {
	left := b.Bounds().MinX
	for i := range ps.pipes {
		if !ps.pipes[i].Passed && ps.pipes[i].X+ps.cfg.Width < left {
			ps.pipes[i].Passed = true
			ps.score.Add(1)
		}
	}
}
