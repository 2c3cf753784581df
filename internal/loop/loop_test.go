package loop

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// recorder collects draw/update calls across all mock layers.
type recorder struct {
	calls []string
}

type mockLayer struct {
	name   string
	glyph  rune
	rec    *recorder
	deltas []time.Duration
	onDraw func()
}

func (m *mockLayer) Draw(f *render.Frame, _ render.Surface, _ *render.Program) *render.Frame {
	m.rec.calls = append(m.rec.calls, "draw:"+m.name)
	if m.glyph != 0 {
		f.Plot(0, 0, m.glyph, core.ColorWhite, core.ColorDefault)
	}
	if m.onDraw != nil {
		m.onDraw()
	}
	return f
}

func (m *mockLayer) Update(dt time.Duration) {
	m.rec.calls = append(m.rec.calls, "update:"+m.name)
	m.deltas = append(m.deltas, dt)
}

type mockBird struct {
	mockLayer
	impulses int
}

func (b *mockBird) Bounds() core.Box { return core.NewBox(-0.5, 0, 0.1, 0.1) }
func (b *mockBird) ApplyImpulse()    { b.impulses++ }

type mockObstacles struct {
	mockLayer
	collideOn map[int]bool
	checks    int
	points    int
}

func (o *mockObstacles) CheckCollision(Body) bool {
	hit := o.collideOn[o.checks]
	o.checks++
	return hit
}

func (o *mockObstacles) CheckPoints(Body) { o.points++ }

type mockGameOver struct {
	mockLayer
	ended    bool
	setCalls int
}

func (g *mockGameOver) Ended() bool { return g.ended }
func (g *mockGameOver) SetEnded() {
	g.ended = true
	g.setCalls++
}

type fixture struct {
	rec       *recorder
	sky       *mockLayer
	bird      *mockBird
	obstacles *mockObstacles
	gameOver  *mockGameOver
	surface   *render.BufferSurface
	clock     *ManualClock
	loop      *Loop
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	rec := &recorder{}
	fx := &fixture{
		rec:       rec,
		sky:       &mockLayer{name: "sky", glyph: 's', rec: rec},
		bird:      &mockBird{mockLayer: mockLayer{name: "bird", glyph: 'b', rec: rec}},
		obstacles: &mockObstacles{mockLayer: mockLayer{name: "pipes", glyph: 'p', rec: rec}, collideOn: map[int]bool{}},
		gameOver:  &mockGameOver{mockLayer: mockLayer{name: "over", rec: rec}},
		surface:   render.NewBufferSurface(10, 4),
		clock:     NewManualClock(epoch),
	}
	scene := Scene{
		Layers:    []render.Drawable{fx.sky, fx.obstacles, fx.bird, fx.gameOver},
		Bird:      fx.bird,
		Obstacles: fx.obstacles,
		GameOver:  fx.gameOver,
	}
	opts = append([]Option{WithClock(fx.clock)}, opts...)
	l, err := New(fx.surface, render.NewProgram(10, 4), scene, opts...)
	require.NoError(t, err)
	fx.loop = l
	return fx
}

func (fx *fixture) tick(t *testing.T, advance time.Duration, events ...Event) time.Time {
	t.Helper()
	fx.clock.Advance(advance)
	next, err := fx.loop.Step(events)
	require.NoError(t, err)
	return next
}

func TestNewValidatesScene(t *testing.T) {
	surface := render.NewBufferSurface(4, 4)
	program := render.NewProgram(4, 4)

	_, err := New(surface, program, Scene{})
	assert.Error(t, err)

	_, err = New(nil, program, Scene{})
	assert.Error(t, err)

	fx := newFixture(t)
	_, err = New(surface, program, Scene{
		Layers:    []render.Drawable{fx.sky, nil},
		Bird:      fx.bird,
		Obstacles: fx.obstacles,
		GameOver:  fx.gameOver,
	})
	assert.Error(t, err)
}

func TestStepDrawsThenUpdatesEachLayerInOrder(t *testing.T) {
	fx := newFixture(t)

	expected := []string{
		"draw:sky", "update:sky",
		"draw:pipes", "update:pipes",
		"draw:bird", "update:bird",
		"draw:over", "update:over",
	}
	for i := 0; i < 3; i++ {
		fx.rec.calls = nil
		fx.tick(t, 20*time.Millisecond)
		assert.Equal(t, expected, fx.rec.calls, "tick %d", i)
	}
	assert.Equal(t, uint64(3), fx.loop.Ticks())
}

func TestStepComposesLayersBackToFront(t *testing.T) {
	fx := newFixture(t, WithClearColor(core.ColorMagenta))
	fx.tick(t, 20*time.Millisecond)

	last := fx.surface.Last()
	require.NotNil(t, last)
	assert.Equal(t, 'b', last.GetCell(0, 0).Rune, "bird is drawn after sky and pipes")
	assert.Equal(t, core.ColorMagenta, last.GetCell(5, 2).Background, "untouched cells keep the clear color")
	assert.Equal(t, 1, fx.surface.Presents())
}

func TestStepGivesEveryLayerTheSameDelta(t *testing.T) {
	fx := newFixture(t)

	fx.tick(t, 35*time.Millisecond)
	fx.tick(t, 12*time.Millisecond)

	for _, m := range []*mockLayer{fx.sky, &fx.obstacles.mockLayer, &fx.bird.mockLayer, &fx.gameOver.mockLayer} {
		assert.Equal(t, []time.Duration{35 * time.Millisecond, 12 * time.Millisecond}, m.deltas, m.name)
	}
	assert.Equal(t, 12*time.Millisecond, fx.loop.LastDelta())
}

func TestStepFreezesTimeAfterCollision(t *testing.T) {
	fx := newFixture(t)
	fx.obstacles.collideOn[2] = true // third tick

	fx.tick(t, 20*time.Millisecond)
	fx.tick(t, 20*time.Millisecond)
	assert.False(t, fx.gameOver.Ended())

	fx.tick(t, 20*time.Millisecond) // collision detected after this frame
	assert.True(t, fx.gameOver.Ended())
	assert.Equal(t, 20*time.Millisecond, fx.sky.deltas[2], "the colliding tick itself still advances")

	for i := 0; i < 5; i++ {
		fx.tick(t, 250*time.Millisecond)
	}
	for _, d := range fx.sky.deltas[3:] {
		assert.Zero(t, d)
	}
	for _, d := range fx.bird.deltas[3:] {
		assert.Zero(t, d)
	}
	assert.Equal(t, 1, fx.gameOver.setCalls)
	assert.Equal(t, 8, fx.surface.Presents(), "frozen ticks still draw")
}

func TestStepGameOverZeroesDeltaRegardlessOfClock(t *testing.T) {
	fx := newFixture(t)
	fx.gameOver.ended = true

	fx.tick(t, time.Hour)
	assert.Equal(t, []time.Duration{0}, fx.sky.deltas)
	assert.Zero(t, fx.loop.LastDelta())
}

func TestStepForwardsFlapKeys(t *testing.T) {
	fx := newFixture(t)

	fx.tick(t, 20*time.Millisecond, KeyDown(" "))
	fx.tick(t, 20*time.Millisecond, KeyDown("x"), KeyDown("f5"), Event{})
	fx.tick(t, 20*time.Millisecond, KeyDown("up"), KeyDown("w"))

	assert.Equal(t, 3, fx.bird.impulses)
}

func TestStepCustomFlapKeys(t *testing.T) {
	fx := newFixture(t, WithFlapKeys("enter"))

	fx.tick(t, 20*time.Millisecond, KeyDown(" "))
	assert.Zero(t, fx.bird.impulses)

	fx.tick(t, 20*time.Millisecond, KeyDown("enter"))
	assert.Equal(t, 1, fx.bird.impulses)
}

func TestStepCloseStopsFrames(t *testing.T) {
	fx := newFixture(t)
	fx.tick(t, 20*time.Millisecond)
	acquired := fx.surface.Acquired()

	fx.clock.Advance(20 * time.Millisecond)
	_, err := fx.loop.Step([]Event{KeyDown(" "), Close(), KeyDown(" ")})
	assert.ErrorIs(t, err, ErrClosed)
	assert.True(t, fx.loop.Closed())
	assert.Equal(t, 1, fx.bird.impulses, "events after close are dropped")

	_, err = fx.loop.Step(nil)
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, acquired, fx.surface.Acquired(), "no frame after close")
	assert.Equal(t, 1, fx.surface.Presents())
}

func TestStepPresentFailureIsFatal(t *testing.T) {
	fx := newFixture(t)
	lost := errors.New("rendering context lost")
	fx.surface.FailPresent(lost)

	fx.clock.Advance(20 * time.Millisecond)
	_, err := fx.loop.Step(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, lost)
	assert.NotErrorIs(t, err, ErrClosed)
	assert.Zero(t, fx.obstacles.checks, "gameplay checks run only after a presented frame")
}

func TestStepSchedulesFromEndOfTick(t *testing.T) {
	fx := newFixture(t, WithPeriod(20*time.Millisecond))

	next := fx.tick(t, 20*time.Millisecond)
	assert.Equal(t, fx.clock.Now().Add(20*time.Millisecond), next)

	// A slow layer overruns the period; the next deadline is measured from
	// when the tick finished and the next delta absorbs the overrun.
	fx.sky.onDraw = func() { fx.clock.Advance(45 * time.Millisecond) }
	start := fx.clock.Now()
	next = fx.tick(t, 0)
	assert.Equal(t, start.Add(65*time.Millisecond), next)

	fx.sky.onDraw = nil
	fx.clock.Advance(20 * time.Millisecond)
	_, err := fx.loop.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, 65*time.Millisecond, fx.loop.LastDelta())
}

func TestStepCountsPointsEveryTick(t *testing.T) {
	fx := newFixture(t)
	for i := 0; i < 4; i++ {
		fx.tick(t, 20*time.Millisecond)
	}
	assert.Equal(t, 4, fx.obstacles.points)
	assert.Equal(t, 4, fx.obstacles.checks)
}

func TestLayersIsACopy(t *testing.T) {
	fx := newFixture(t)
	layers := fx.loop.Layers()
	layers[0] = nil

	assert.NotNil(t, fx.loop.Layers()[0])
	assert.Len(t, fx.loop.Layers(), 4)
}

// scriptedSource closes after n polls and flaps on every poll.
type scriptedSource struct {
	polls int
	n     int
}

func (s *scriptedSource) Poll() []Event {
	s.polls++
	if s.polls > s.n {
		return []Event{Close()}
	}
	return []Event{KeyDown(" ")}
}

func TestRunUntilClose(t *testing.T) {
	fx := newFixture(t, WithPeriod(20*time.Millisecond))
	src := &scriptedSource{n: 5}

	err := fx.loop.Run(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), fx.loop.Ticks())
	assert.Equal(t, 5, fx.surface.Presents())
	assert.Equal(t, 5, fx.bird.impulses)
	assert.Equal(t, epoch.Add(5*20*time.Millisecond), fx.clock.Now())
	// First tick has nothing to measure, the rest see exactly one period
	assert.Equal(t, []time.Duration{0, 20 * time.Millisecond, 20 * time.Millisecond, 20 * time.Millisecond, 20 * time.Millisecond}, fx.sky.deltas)
}

func TestRunReturnsPresentError(t *testing.T) {
	fx := newFixture(t)
	fx.surface.FailPresent(fmt.Errorf("gone"))

	err := fx.loop.Run(context.Background(), NewEventQueue())
	assert.Error(t, err)
	assert.Zero(t, fx.loop.Ticks())
}

func TestRunStopsOnCancel(t *testing.T) {
	fx := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fx.loop.Run(ctx, NewEventQueue())
	assert.NoError(t, err)
	assert.Zero(t, fx.surface.Acquired())
}

func TestEventQueue(t *testing.T) {
	q := NewEventQueue()
	assert.Nil(t, q.Poll())

	q.Push(KeyDown(" "))
	q.Push(Close())
	assert.Equal(t, 2, q.Len())

	assert.Equal(t, []Event{KeyDown(" "), Close()}, q.Poll())
	assert.Zero(t, q.Len())
	assert.Equal(t, "KeyDown", EventKeyDown.String())
}
