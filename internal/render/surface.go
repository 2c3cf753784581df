package render

import "github.com/vovakirdan/tui-flappy/internal/core"

// Surface is where frames come from and where they end up.
type Surface interface {
	// AcquireFrame returns a new frame to compose into.
	AcquireFrame() *Frame

	// Size returns the current surface dimensions in cells.
	Size() (cols, rows int)
}

// BufferSurface is an in-memory surface. It keeps a copy of the last
// presented screen and can be told to fail presentation.
type BufferSurface struct {
	screen   *core.Screen
	last     *core.Screen
	presents int
	acquired int
	failWith error
}

// NewBufferSurface creates a surface of the given size.
func NewBufferSurface(cols, rows int) *BufferSurface {
	return &BufferSurface{screen: core.NewScreen(cols, rows)}
}

// AcquireFrame implements Surface.
func (b *BufferSurface) AcquireFrame() *Frame {
	b.acquired++
	return NewFrame(b.screen, b.present)
}

// Size implements Surface.
func (b *BufferSurface) Size() (cols, rows int) {
	return b.screen.Width(), b.screen.Height()
}

// FailPresent makes every following Present return err. Pass nil to recover.
func (b *BufferSurface) FailPresent(err error) {
	b.failWith = err
}

// Presents returns how many frames were presented successfully.
func (b *BufferSurface) Presents() int {
	return b.presents
}

// Acquired returns how many frames were handed out.
func (b *BufferSurface) Acquired() int {
	return b.acquired
}

// Last returns a copy of the last presented screen, or nil.
func (b *BufferSurface) Last() *core.Screen {
	return b.last
}

func (b *BufferSurface) present(screen *core.Screen) error {
	if b.failWith != nil {
		return b.failWith
	}
	b.presents++
	b.last = screen.Clone()
	return nil
}
