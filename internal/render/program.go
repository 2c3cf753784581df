package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Program projects the logical [-1,1]x[-1,1] space (y up) onto a grid of
// terminal cells (row 0 at the top). It plays the part of a shader program:
// created once at setup and passed to every Draw.
type Program struct {
	cols, rows int
	proj       mgl32.Mat3
	inv        mgl32.Mat3
}

// NewProgram creates a projection onto a cols x rows grid.
func NewProgram(cols, rows int) *Program {
	p := &Program{}
	p.SetViewport(cols, rows)
	return p
}

// SetViewport rebuilds the projection for a new grid size.
// The logical space does not change.
func (p *Program) SetViewport(cols, rows int) {
	p.cols, p.rows = cols, rows
	hw, hh := float32(cols)/2, float32(rows)/2
	p.proj = mgl32.Translate2D(hw, hh).Mul3(mgl32.Scale2D(hw, -hh))
	if cols > 0 && rows > 0 {
		p.inv = p.proj.Inv()
	} else {
		p.inv = mgl32.Ident3()
	}
}

// Viewport returns the grid size.
func (p *Program) Viewport() (cols, rows int) {
	return p.cols, p.rows
}

// Project maps a logical point to fractional cell coordinates.
func (p *Program) Project(x, y float64) (col, row float64) {
	v := p.proj.Mul3x1(mgl32.Vec3{float32(x), float32(y), 1})
	return float64(v.X()), float64(v.Y())
}

// Unproject maps fractional cell coordinates back to logical space.
func (p *Program) Unproject(col, row float64) (x, y float64) {
	v := p.inv.Mul3x1(mgl32.Vec3{float32(col), float32(row), 1})
	return float64(v.X()), float64(v.Y())
}

// CellWidth returns the logical width of one cell.
func (p *Program) CellWidth() float64 {
	if p.cols <= 0 {
		return 0
	}
	return 2 / float64(p.cols)
}

// CellHeight returns the logical height of one cell.
func (p *Program) CellHeight() float64 {
	if p.rows <= 0 {
		return 0
	}
	return 2 / float64(p.rows)
}
