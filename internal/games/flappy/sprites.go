package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

// Visual characters for rendering
const (
	BirdChar      = '▶'
	BirdBodyChar  = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// SkySprite is the far background. One tile spans its full width.
var SkySprite = render.Sprite{
	Rows: []string{
		"                            ",
		"      .-~~-.                ",
		"   .-(      )-.        .    ",
		"  (____________)            ",
		"                    .-~-.   ",
		"        .          (_____)  ",
		"                            ",
		"                            ",
		"  .                     .   ",
		"                            ",
		"           ^^               ",
		"         ^^^^^^       ^     ",
		"  ^     ^^^^^^^^^    ^^^    ",
		" ^^^   ^^^^^^^^^^^  ^^^^^   ",
	},
	Fg: core.ColorBrightWhite,
	Bg: core.ColorBlue,
}

// BaseSprite is the scrolling ground band.
var BaseSprite = render.Sprite{
	Rows: []string{
		"════════════",
		"░▒░░▒░░░▒░░▒",
		"▒░░▒░░▒░░▒░░",
	},
	Fg: core.ColorBrightYellow,
	Bg: core.ColorGreen,
}

// BirdSprite is drawn over whatever is behind it.
var BirdSprite = render.Sprite{
	Rows: []string{
		"●▶",
		"●●",
	},
	Fg: core.ColorBrightYellow,
}

// PipeBodySprite fills pipe sections.
var PipeBodySprite = render.Sprite{
	Rows: []string{string(PipeChar)},
	Fg:   core.ColorBrightGreen,
}

// PipeCapTopSprite closes the upper pipe above the gap.
var PipeCapTopSprite = render.Sprite{
	Rows: []string{string(PipeCapTop)},
	Fg:   core.ColorGreen,
}

// PipeCapBottomSprite closes the lower pipe below the gap.
var PipeCapBottomSprite = render.Sprite{
	Rows: []string{string(PipeCapBottom)},
	Fg:   core.ColorGreen,
}
