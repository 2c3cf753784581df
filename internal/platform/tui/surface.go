package tui

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

// ErrSurfaceClosed is returned when presenting to a closed surface.
var ErrSurfaceClosed = errors.New("tui: surface closed")

// Surface is the terminal presentation surface. Presenting a frame renders
// it into the string Bubble Tea shows on the next View.
type Surface struct {
	screen *core.Screen
	view   string
	closed bool
}

// Compile-time check
var _ render.Surface = (*Surface)(nil)

// NewSurface creates a surface of cols x rows cells.
func NewSurface(cols, rows int) *Surface {
	return &Surface{screen: core.NewScreen(max(cols, 0), max(rows, 0))}
}

// AcquireFrame implements render.Surface. The screen buffer is reused
// between frames.
func (s *Surface) AcquireFrame() *render.Frame {
	return render.NewFrame(s.screen, s.present)
}

// Size implements render.Surface.
func (s *Surface) Size() (cols, rows int) {
	return s.screen.Width(), s.screen.Height()
}

// Resize changes the surface size. The next frame starts blank.
func (s *Surface) Resize(cols, rows int) {
	s.screen.Resize(max(cols, 0), max(rows, 0))
}

// View returns the last presented frame as styled text.
func (s *Surface) View() string {
	return s.view
}

// Close makes every following present fail.
func (s *Surface) Close() {
	s.closed = true
}

func (s *Surface) present(screen *core.Screen) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if screen.Width() == 0 || screen.Height() == 0 {
		return fmt.Errorf("tui: cannot present a %dx%d surface", screen.Width(), screen.Height())
	}
	s.view = RenderScreen(screen)
	return nil
}
