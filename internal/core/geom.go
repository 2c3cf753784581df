// Package core provides fundamental types and utilities for the game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect is an axis-aligned cell rectangle used for overlays.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Box is an axis-aligned rectangle in logical coordinates.
// The y axis points up, so MinY is the bottom edge.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBox creates a box from its top-left corner and size, the way
// textures are positioned.
func NewBox(left, top, w, h float64) Box {
	return Box{MinX: left, MinY: top - h, MaxX: left + w, MaxY: top}
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.MaxY - b.MinY
}

// Intersects returns true if the boxes overlap with positive area.
// Touching edges do not count.
func (b Box) Intersects(other Box) bool {
	if b.MinX >= other.MaxX || other.MinX >= b.MaxX {
		return false
	}
	if b.MinY >= other.MaxY || other.MinY >= b.MaxY {
		return false
	}
	return true
}
