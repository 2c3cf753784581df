package render

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-4
}

func TestProgramProjectCorners(t *testing.T) {
	p := NewProgram(80, 24)

	tests := []struct {
		name     string
		x, y     float64
		col, row float64
	}{
		{"top-left", -1, 1, 0, 0},
		{"bottom-right", 1, -1, 80, 24},
		{"centre", 0, 0, 40, 12},
		{"bottom-left", -1, -1, 0, 24},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, row := p.Project(tc.x, tc.y)
			if !approx(col, tc.col) || !approx(row, tc.row) {
				t.Errorf("Project(%v, %v) = (%v, %v), expected (%v, %v)", tc.x, tc.y, col, row, tc.col, tc.row)
			}
			x, y := p.Unproject(col, row)
			if !approx(x, tc.x) || !approx(y, tc.y) {
				t.Errorf("Unproject round trip = (%v, %v), expected (%v, %v)", x, y, tc.x, tc.y)
			}
		})
	}
}

func TestProgramSetViewport(t *testing.T) {
	p := NewProgram(10, 10)
	p.SetViewport(40, 20)

	cols, rows := p.Viewport()
	if cols != 40 || rows != 20 {
		t.Errorf("Viewport() = %dx%d, expected 40x20", cols, rows)
	}
	if !approx(p.CellWidth(), 0.05) || !approx(p.CellHeight(), 0.1) {
		t.Errorf("cell size = %vx%v, expected 0.05x0.1", p.CellWidth(), p.CellHeight())
	}
}

func TestFramePresentOnce(t *testing.T) {
	calls := 0
	f := NewFrame(core.NewScreen(4, 4), func(*core.Screen) error {
		calls++
		return nil
	})

	if err := f.Present(); err != nil {
		t.Fatalf("Present() failed: %v", err)
	}
	if err := f.Present(); !errors.Is(err, ErrFramePresented) {
		t.Errorf("second Present() = %v, expected ErrFramePresented", err)
	}
	if calls != 1 {
		t.Errorf("present callback ran %d times, expected 1", calls)
	}

	// Sealed frames ignore drawing
	f.Plot(0, 0, 'X', core.ColorWhite, core.ColorDefault)
	if f.Cell(0, 0).Rune == 'X' {
		t.Error("Plot after Present should be ignored")
	}
}

func TestFramePlotKeepsBackground(t *testing.T) {
	f := NewFrame(core.NewScreen(4, 1), nil)
	f.Clear(core.ColorBlue)
	f.Plot(1, 0, '>', core.ColorYellow, core.ColorDefault)
	f.Plot(2, 0, '#', core.ColorGreen, core.ColorRed)

	if c := f.Cell(1, 0); c.Rune != '>' || c.Background != core.ColorBlue {
		t.Errorf("cell 1 = %+v, expected '>' on blue", c)
	}
	if c := f.Cell(2, 0); c.Background != core.ColorRed {
		t.Errorf("cell 2 background = %v, expected red", c.Background)
	}

	f.Text(0, 0, "hello", core.ColorWhite)
	if f.Cell(3, 0).Rune != 'l' {
		t.Errorf("Text should be clipped to the frame, got %q at 3", f.Cell(3, 0).Rune)
	}
}

func TestFramePanelAndCenteredText(t *testing.T) {
	f := NewFrame(core.NewScreen(9, 3), nil)
	f.Clear(core.ColorRed)
	f.Panel(core.NewRect(1, 0, 7, 3), core.ColorWhite, core.ColorBlack)
	f.TextCentered(1, "abc", core.ColorYellow)

	if c := f.Cell(1, 0); c.Rune != '┌' || c.Background != core.ColorBlack {
		t.Errorf("panel corner = %+v, expected '┌' on black", c)
	}
	if c := f.Cell(0, 1); c.Background != core.ColorRed {
		t.Errorf("cell outside the panel should stay red, got %v", c.Background)
	}
	if c := f.Cell(3, 1); c.Rune != 'a' || c.Color != core.ColorYellow || c.Background != core.ColorBlack {
		t.Errorf("centered text = %+v, expected yellow 'a' on the panel", c)
	}

	if err := f.Present(); err != nil {
		t.Fatalf("Present() failed: %v", err)
	}
	f.Panel(core.NewRect(0, 0, 9, 3), core.ColorWhite, core.ColorBlue)
	if f.Cell(0, 0).Background == core.ColorBlue {
		t.Error("Panel after Present should be ignored")
	}
}

func TestTextureDrawFullScreen(t *testing.T) {
	p := NewProgram(8, 4)
	f := NewFrame(core.NewScreen(8, 4), nil)

	tex := NewTexture(Sprite{Rows: []string{"AB", "CD"}, Fg: core.ColorWhite}, 2, 2)
	tex.SetPos(-1, 1)
	tex.Draw(f, p)

	// Each sprite rune covers a 4x2 block of cells
	expected := []string{"AAAABBBB", "AAAABBBB", "CCCCDDDD", "CCCCDDDD"}
	for row, want := range expected {
		got := ""
		for col := 0; col < 8; col++ {
			got += string(f.Cell(col, row).Rune)
		}
		if got != want {
			t.Errorf("row %d = %q, expected %q", row, got, want)
		}
	}
}

func TestTextureTransparencyAndClipping(t *testing.T) {
	p := NewProgram(8, 4)
	f := NewFrame(core.NewScreen(8, 4), nil)
	f.Clear(core.ColorBlue)

	tex := NewTexture(Sprite{Rows: []string{"X."}, Transparent: '.'}, 1, 0.5)
	// Half of the texture hangs off the right edge
	tex.SetPos(0.5, 1)
	tex.Draw(f, p)

	if f.Cell(6, 0).Rune != 'X' {
		t.Errorf("expected X at col 6, got %q", f.Cell(6, 0).Rune)
	}
	if f.Cell(7, 0).Rune != 'X' {
		t.Errorf("expected X at col 7, got %q", f.Cell(7, 0).Rune)
	}
	if f.Cell(5, 0).Rune != ' ' {
		t.Errorf("nothing should be drawn left of the texture, got %q", f.Cell(5, 0).Rune)
	}
	if f.Cell(6, 1).Rune != ' ' {
		t.Errorf("nothing should be drawn below the texture, got %q", f.Cell(6, 1).Rune)
	}
}

func TestBufferSurface(t *testing.T) {
	s := NewBufferSurface(3, 2)

	f := s.AcquireFrame()
	f.Clear(core.ColorRed)
	f.Plot(0, 0, 'Z', core.ColorWhite, core.ColorDefault)
	if err := f.Present(); err != nil {
		t.Fatalf("Present() failed: %v", err)
	}
	if s.Presents() != 1 || s.Acquired() != 1 {
		t.Errorf("counts = %d presents / %d acquired, expected 1/1", s.Presents(), s.Acquired())
	}
	if s.Last().GetCell(0, 0).Rune != 'Z' {
		t.Error("Last() should hold the presented screen")
	}

	boom := errors.New("context lost")
	s.FailPresent(boom)
	if err := s.AcquireFrame().Present(); !errors.Is(err, boom) {
		t.Errorf("Present() = %v, expected injected failure", err)
	}
	if s.Presents() != 1 {
		t.Error("failed presents should not be counted")
	}
}
