package render

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Sprite is rune art sampled onto cells. Rows may have different lengths;
// missing runes are treated as transparent.
type Sprite struct {
	Rows        []string
	Fg, Bg      core.Color
	Transparent rune // 0 means fully opaque
}

// Texture is a sprite placed in logical space. The position is the
// top-left corner, the size is in logical units.
type Texture struct {
	runes  [][]rune
	cols   int // widest sprite row
	sprite Sprite
	x, y   float64
	w, h   float64
}

// NewTexture creates a texture of the given logical size at (0, 0).
func NewTexture(s Sprite, w, h float64) *Texture {
	runes := make([][]rune, len(s.Rows))
	cols := 0
	for i, row := range s.Rows {
		runes[i] = []rune(row)
		cols = max(cols, len(runes[i]))
	}
	return &Texture{runes: runes, cols: cols, sprite: s, w: w, h: h}
}

// SetPos moves the top-left corner of the texture.
func (t *Texture) SetPos(x, y float64) {
	t.x, t.y = x, y
}

// Pos returns the top-left corner.
func (t *Texture) Pos() (x, y float64) {
	return t.x, t.y
}

// SetSize changes the logical size the sprite is stretched to.
func (t *Texture) SetSize(w, h float64) {
	t.w, t.h = w, h
}

// Width returns the logical width.
func (t *Texture) Width() float64 {
	return t.w
}

// Height returns the logical height.
func (t *Texture) Height() float64 {
	return t.h
}

// Bounds returns the logical box currently covered.
func (t *Texture) Bounds() core.Box {
	return core.NewBox(t.x, t.y, t.w, t.h)
}

// sample returns the sprite rune at normalized (u, v), v growing downwards.
func (t *Texture) sample(u, v float64) (rune, bool) {
	if len(t.runes) == 0 {
		return 0, false
	}
	row := t.runes[int(v*float64(len(t.runes)))]
	if len(row) == 0 {
		return 0, false
	}
	// Columns are sampled against the widest row so short rows stay left-aligned.
	col := int(u * float64(t.cols))
	if col >= len(row) {
		return 0, false
	}
	r := row[col]
	if t.sprite.Transparent != 0 && r == t.sprite.Transparent {
		return 0, false
	}
	return r, true
}

// Draw rasterizes the texture into f with nearest-neighbour sampling at
// cell centres and returns f.
func (t *Texture) Draw(f *Frame, p *Program) *Frame {
	if f == nil || t.w <= 0 || t.h <= 0 {
		return f
	}
	cols, rows := f.Size()

	c0, r0 := p.Project(t.x, t.y)
	c1, r1 := p.Project(t.x+t.w, t.y-t.h)
	minC := max(int(math.Floor(c0)), 0)
	maxC := min(int(math.Ceil(c1)), cols)
	minR := max(int(math.Floor(r0)), 0)
	maxR := min(int(math.Ceil(r1)), rows)

	for r := minR; r < maxR; r++ {
		for c := minC; c < maxC; c++ {
			lx, ly := p.Unproject(float64(c)+0.5, float64(r)+0.5)
			u := (lx - t.x) / t.w
			v := (t.y - ly) / t.h
			if u < 0 || u >= 1 || v < 0 || v >= 1 {
				continue
			}
			if ch, ok := t.sample(u, v); ok {
				f.Plot(c, r, ch, t.sprite.Fg, t.sprite.Bg)
			}
		}
	}
	return f
}
