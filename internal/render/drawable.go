// Package render provides the drawing contract shared by every on-screen layer,
// together with the frame, surface, projection and texture primitives layers use.
package render

import "time"

// Drawable is the capability every visual layer implements.
//
// Draw records the layer into f and returns f so the caller can hand it to
// the next layer. It must not present the frame and must not block. Draw may
// reposition the layer's own textures but must leave simulation state alone.
//
// Update advances time-dependent state by dt. The effect becomes visible on
// the next Draw, never on a frame already composed.
type Drawable interface {
	Draw(f *Frame, s Surface, p *Program) *Frame
	Update(dt time.Duration)
}
