package flappy

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/loop"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

// Bird is the player-controlled entity. Its position is the top-left corner
// of the sprite in logical coordinates; velocity is positive upwards.
type Bird struct {
	cfg     config.BirdConfig
	texture *render.Texture
	y       float64
	vel     float64
}

// Compile-time check
var _ loop.Bird = (*Bird)(nil)

// NewBird creates a bird centred vertically at cfg.X.
func NewBird(cfg config.BirdConfig) *Bird {
	return &Bird{
		cfg:     cfg,
		texture: render.NewTexture(BirdSprite, cfg.Width, cfg.Height),
		y:       cfg.Height / 2,
	}
}

// Y returns the top edge of the bird.
func (b *Bird) Y() float64 {
	return b.y
}

// Velocity returns the vertical velocity in logical units per second.
func (b *Bird) Velocity() float64 {
	return b.vel
}

// ApplyImpulse replaces the current velocity with the flap impulse.
func (b *Bird) ApplyImpulse() {
	b.vel = b.cfg.Impulse
}

// Bounds returns the bird's collision box.
func (b *Bird) Bounds() core.Box {
	return core.NewBox(b.cfg.X, b.y, b.cfg.Width, b.cfg.Height)
}

// Draw positions the sprite and draws it.
func (b *Bird) Draw(f *render.Frame, _ render.Surface, p *render.Program) *render.Frame {
	b.texture.SetPos(b.cfg.X, b.y)
	return b.texture.Draw(f, p)
}

// Update applies gravity and moves the bird.
func (b *Bird) Update(dt time.Duration) {
	secs := dt.Seconds()
	if secs <= 0 {
		return
	}

	b.vel -= b.cfg.Gravity * secs
	if b.vel < -b.cfg.MaxFallSpeed {
		b.vel = -b.cfg.MaxFallSpeed
	}
	b.y += b.vel * secs

	// Hit the ceiling
	if b.y > 1 {
		b.y = 1
		b.vel = 0
	}
	// Keep the sprite on screen; the floor check ends the run.
	if b.y < -1+b.cfg.Height {
		b.y = -1 + b.cfg.Height
	}
}
