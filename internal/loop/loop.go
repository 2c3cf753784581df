// Package loop implements the fixed-cadence game loop: it polls input,
// measures elapsed time, draws and updates every layer in order, presents
// the frame and then runs the gameplay checks.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

// DefaultPeriod is the fixed rescheduling interval.
const DefaultPeriod = 20 * time.Millisecond

// ErrClosed is returned by Step when a close request was received.
// It ends the loop cleanly and is not a failure.
var ErrClosed = errors.New("loop: closed")

// Loop drives one scene on one surface. It is not safe for concurrent use;
// every method must be called from the goroutine that runs the game.
type Loop struct {
	surface  render.Surface
	program  *render.Program
	layers   []render.Drawable
	bird     Bird
	obstacle Obstacles
	gameOver GameOver

	clock     Clock
	period    time.Duration
	clear     core.Color
	flapKeys  map[string]bool
	logger    *log.Logger
	lastTick  time.Time
	lastDelta time.Duration
	ticks     uint64
	closed    bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(l *Loop) {
		l.clock = c
	}
}

// WithPeriod sets the fixed rescheduling interval.
func WithPeriod(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.period = d
		}
	}
}

// WithClearColor sets the color frames are cleared to before layers draw.
func WithClearColor(c core.Color) Option {
	return func(l *Loop) {
		l.clear = c
	}
}

// WithFlapKeys sets the key names that trigger the bird's impulse.
func WithFlapKeys(keys ...string) Option {
	return func(l *Loop) {
		l.flapKeys = make(map[string]bool, len(keys))
		for _, k := range keys {
			l.flapKeys[k] = true
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a loop for scene. The layer order is fixed from here on.
func New(surface render.Surface, program *render.Program, scene Scene, opts ...Option) (*Loop, error) {
	if surface == nil {
		return nil, errors.New("loop: nil surface")
	}
	if program == nil {
		return nil, errors.New("loop: nil program")
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}

	l := &Loop{
		surface:  surface,
		program:  program,
		layers:   append([]render.Drawable(nil), scene.Layers...),
		bird:     scene.Bird,
		obstacle: scene.Obstacles,
		gameOver: scene.GameOver,
		clock:    SystemClock{},
		period:   DefaultPeriod,
		clear:    core.ColorRed,
		logger:   log.New(io.Discard),
	}
	WithFlapKeys(" ", "space", "up", "w")(l)
	for _, opt := range opts {
		opt(l)
	}
	l.lastTick = l.clock.Now()
	return l, nil
}

// Layers returns the draw order.
func (l *Loop) Layers() []render.Drawable {
	return append([]render.Drawable(nil), l.layers...)
}

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// LastDelta returns the delta handed to the layers on the last tick.
func (l *Loop) LastDelta() time.Duration {
	return l.lastDelta
}

// Period returns the rescheduling interval.
func (l *Loop) Period() time.Duration {
	return l.period
}

// Closed reports whether a close request has been processed.
func (l *Loop) Closed() bool {
	return l.closed
}

// Step runs one tick with the given input and returns when the next tick
// is due. ErrClosed means a close request arrived and no frame was drawn.
// Any other error comes from presentation and is fatal.
func (l *Loop) Step(events []Event) (time.Time, error) {
	if l.closed {
		return time.Time{}, ErrClosed
	}

	for _, e := range events {
		switch e.Kind {
		case EventClose:
			l.closed = true
			l.logger.Debug("close requested", "tick", l.ticks)
			return time.Time{}, ErrClosed
		case EventKeyDown:
			if l.flapKeys[e.Key] {
				l.bird.ApplyImpulse()
			}
		}
	}

	now := l.clock.Now()
	delta := max(now.Sub(l.lastTick), 0)
	l.lastTick = now
	if l.gameOver.Ended() {
		delta = 0
	}
	l.lastDelta = delta

	frame := l.surface.AcquireFrame()
	frame.Clear(l.clear)
	for _, layer := range l.layers {
		frame = layer.Draw(frame, l.surface, l.program)
		layer.Update(delta)
	}
	if err := frame.Present(); err != nil {
		return time.Time{}, fmt.Errorf("loop: present frame: %w", err)
	}

	if l.obstacle.CheckCollision(l.bird) && !l.gameOver.Ended() {
		l.gameOver.SetEnded()
		l.logger.Info("game over", "tick", l.ticks)
	}
	l.obstacle.CheckPoints(l.bird)

	l.ticks++
	return l.clock.Now().Add(l.period), nil
}

// Run polls src and steps until a close request, a presentation failure or
// ctx cancellation. Between ticks it waits for the deadline Step returned.
func (l *Loop) Run(ctx context.Context, src InputSource) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		next, err := l.Step(src.Poll())
		if errors.Is(err, ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}

		wait := max(next.Sub(l.clock.Now()), 0)
		select {
		case <-ctx.Done():
			return nil
		case <-l.clock.After(wait):
		}
	}
}
