package loop

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

// Body is anything with a collision box in logical space.
type Body interface {
	Bounds() core.Box
}

// Bird is the moving entity. It reacts to the flap key.
type Bird interface {
	render.Drawable
	Body
	ApplyImpulse()
}

// Obstacles checks the moving entity against the obstacle course.
type Obstacles interface {
	render.Drawable
	CheckCollision(b Body) bool
	CheckPoints(b Body)
}

// GameOver owns the "run has ended" state and its overlay.
type GameOver interface {
	render.Drawable
	Ended() bool
	SetEnded()
}

// Scene is everything the loop drives. Layers are drawn back to front
// and are expected to include the collaborators themselves.
type Scene struct {
	Layers    []render.Drawable
	Bird      Bird
	Obstacles Obstacles
	GameOver  GameOver
}

// Validate checks that the scene can be run.
func (s Scene) Validate() error {
	if len(s.Layers) == 0 {
		return errors.New("loop: scene has no layers")
	}
	for i, l := range s.Layers {
		if l == nil {
			return fmt.Errorf("loop: scene has a nil layer at index %d", i)
		}
	}
	if s.Bird == nil {
		return errors.New("loop: scene has no bird")
	}
	if s.Obstacles == nil {
		return errors.New("loop: scene has no obstacles")
	}
	if s.GameOver == nil {
		return errors.New("loop: scene has no game-over state")
	}
	return nil
}
