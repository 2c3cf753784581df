// Package layer implements background-style layers built on the render contract.
package layer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/render"
)

// ErrInvalidTileWidth is returned for tile widths that are not finite and positive.
var ErrInvalidTileWidth = errors.New("layer: tile width must be finite and > 0")

// viewportWidth is the logical width of the [-1, 1] viewport.
const viewportWidth = 2.0

// snapTolerance is relative to the tile width. Remainders this close to a
// tile boundary are treated as exactly on it, so offsets that differ by whole
// tiles produce identical placements.
const snapTolerance = 1e-9

// ScrollingLayer repeats one texture horizontally across the viewport and
// scrolls it over time. The texture is owned by the layer.
type ScrollingLayer struct {
	texture   *render.Texture
	tileWidth float64
	speed     float64 // logical units per second, positive scrolls left
	offset    float64 // accumulated, never reduced
}

// Compile-time check
var _ render.Drawable = (*ScrollingLayer)(nil)

// New creates a scrolling layer. The texture is stretched to tileWidth and
// keeps its height; its bottom edge is pinned to the bottom of the viewport.
func New(tex *render.Texture, tileWidth, speed float64) (*ScrollingLayer, error) {
	if tex == nil {
		return nil, errors.New("layer: nil texture")
	}
	if math.IsNaN(tileWidth) || math.IsInf(tileWidth, 0) || tileWidth <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTileWidth, tileWidth)
	}
	tex.SetSize(tileWidth, tex.Height())

	return &ScrollingLayer{
		texture:   tex,
		tileWidth: tileWidth,
		speed:     speed,
	}, nil
}

// TileWidth returns the logical width of one tile.
func (l *ScrollingLayer) TileWidth() float64 {
	return l.tileWidth
}

// Speed returns the scroll speed in logical units per second.
func (l *ScrollingLayer) Speed() float64 {
	return l.speed
}

// Offset returns the accumulated scroll displacement.
func (l *ScrollingLayer) Offset() float64 {
	return l.offset
}

// TileCount returns how many tiles are drawn per frame.
// One extra tile covers the right edge while the first one is shifted left.
func (l *ScrollingLayer) TileCount() int {
	return int(math.Ceil(viewportWidth/l.tileWidth)) + 1
}

// Placements returns the left edge of every tile for the current offset.
func (l *ScrollingLayer) Placements() []float64 {
	shift := wrap(l.offset, l.tileWidth)
	n := l.TileCount()
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = -1 + l.tileWidth*float64(i) + shift
	}
	return xs
}

// Draw implements render.Drawable.
func (l *ScrollingLayer) Draw(f *render.Frame, _ render.Surface, p *render.Program) *render.Frame {
	y := -1 + l.texture.Height()
	for _, x := range l.Placements() {
		l.texture.SetPos(x, y)
		f = l.texture.Draw(f, p)
	}
	return f
}

// Update implements render.Drawable.
func (l *ScrollingLayer) Update(dt time.Duration) {
	l.offset -= dt.Seconds() * l.speed
}

// wrap reduces offset modulo width into (-width, 0]. math.Mod keeps the
// sign of offset, so positive remainders are shifted down one tile; a
// positive shift would leave the left edge of the viewport uncovered.
func wrap(offset, width float64) float64 {
	r := math.Mod(offset, width)
	if r > 0 {
		r -= width
	}
	eps := snapTolerance * width
	if r > -eps || r < -width+eps {
		return 0
	}
	return r
}
