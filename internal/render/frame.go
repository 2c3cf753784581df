package render

import (
	"errors"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ErrFramePresented is returned when a frame is presented twice.
var ErrFramePresented = errors.New("render: frame already presented")

// PresentFunc hands a finished screen to the presentation channel.
type PresentFunc func(screen *core.Screen) error

// Frame is a single-owner handle on the buffer being composed for one tick.
// It is passed from layer to layer and presented exactly once.
type Frame struct {
	screen    *core.Screen
	present   PresentFunc
	presented bool
}

// NewFrame wraps screen in a frame that calls present when finished.
// A nil present makes Present a no-op apart from sealing the frame.
func NewFrame(screen *core.Screen, present PresentFunc) *Frame {
	return &Frame{screen: screen, present: present}
}

// Size returns the frame dimensions in cells.
func (f *Frame) Size() (cols, rows int) {
	return f.screen.Width(), f.screen.Height()
}

// Clear fills the frame with blank cells on the given background color.
func (f *Frame) Clear(bg core.Color) {
	if f.presented {
		return
	}
	f.screen.FillCell(core.Cell{Rune: ' ', Background: bg})
}

// Plot writes one rune. A ColorDefault background keeps whatever background
// is already in the cell, so sprites can sit on top of earlier layers.
func (f *Frame) Plot(col, row int, r rune, fg, bg core.Color) {
	if f.presented {
		return
	}
	f.screen.Put(col, row, r, fg, bg)
}

// Text writes s horizontally starting at (col, row), clipped to the frame.
func (f *Frame) Text(col, row int, s string, fg core.Color) {
	if f.presented {
		return
	}
	f.screen.DrawText(col, row, s, fg)
}

// TextCentered writes s centered horizontally on row.
func (f *Frame) TextCentered(row int, s string, fg core.Color) {
	if f.presented {
		return
	}
	f.screen.DrawTextCentered(row, s, fg)
}

// Panel fills r with blanks on bg and outlines it in fg.
func (f *Frame) Panel(r core.Rect, fg, bg core.Color) {
	if f.presented {
		return
	}
	f.screen.FillRect(r, core.Cell{Rune: ' ', Color: fg, Background: bg})
	f.screen.DrawBox(r, fg, bg)
}

// Cell returns the cell at (col, row).
func (f *Frame) Cell(col, row int) core.Cell {
	return f.screen.GetCell(col, row)
}

// Presented reports whether Present has been called.
func (f *Frame) Presented() bool {
	return f.presented
}

// Present finishes the frame. After the first call the frame is sealed and
// further drawing is ignored.
func (f *Frame) Present() error {
	if f.presented {
		return ErrFramePresented
	}
	f.presented = true
	if f.present == nil {
		return nil
	}
	return f.present(f.screen)
}
