package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/loop"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

// footerRows is the space below the game reserved for the help line.
const footerRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that drives a game loop.
// Keys are queued and handed to the loop on the next tick.
type Model struct {
	loop     *loop.Loop
	surface  *Surface
	program  *render.Program
	events   *loop.EventQueue
	keys     KeyMap
	help     help.Model
	err      error
	quitting bool
}

// NewModel creates a model for scene on a cols x rows terminal.
// The loop flaps on the keys bound to KeyMap.Flap unless opts override it.
func NewModel(scene loop.Scene, cols, rows int, opts ...loop.Option) (Model, error) {
	cols, rows = max(cols, 1), max(rows-footerRows, 1)
	surface := NewSurface(cols, rows)
	program := render.NewProgram(cols, rows)
	keys := DefaultKeyMap()

	opts = append([]loop.Option{loop.WithFlapKeys(keys.Flap.Keys()...)}, opts...)
	l, err := loop.New(surface, program, scene, opts...)
	if err != nil {
		return Model{}, err
	}

	h := help.New()
	h.Width = cols

	return Model{
		loop:    l,
		surface: surface,
		program: program,
		events:  loop.NewEventQueue(),
		keys:    keys,
		help:    h,
	}, nil
}

// NewGameModel builds a flappy world from game and wraps it in a model.
// A zero rt.Seed picks a time-based seed. rec and logger may be nil.
func NewGameModel(game config.FlappyConfig, rt core.RuntimeConfig, rec flappy.RunRecorder, logger *log.Logger) (Model, error) {
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	clearColor, err := game.ClearColor()
	if err != nil {
		return Model{}, err
	}

	worldOpts := []flappy.WorldOption{}
	loopOpts := []loop.Option{loop.WithClearColor(clearColor)}
	if rt.TickInterval > 0 {
		loopOpts = append(loopOpts, loop.WithPeriod(rt.TickInterval))
	}
	if rec != nil {
		worldOpts = append(worldOpts, flappy.WithRecorder(rec))
	}
	if logger != nil {
		worldOpts = append(worldOpts, flappy.WithLogger(logger))
		loopOpts = append(loopOpts, loop.WithLogger(logger))
	}

	world, err := flappy.NewWorld(game, rt.Seed, worldOpts...)
	if err != nil {
		return Model{}, err
	}
	return NewModel(world.Scene(), rt.ScreenW, rt.ScreenH, loopOpts...)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(0)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues keyboard input for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.events.Push(loop.Close())
		return m, nil
	}
	m.events.Push(loop.KeyDown(msg.String()))
	return m, nil
}

// handleResize processes window resize events. The logical space stays the
// same, only the projection changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	cols, rows := max(msg.Width, 1), max(msg.Height-footerRows, 1)
	m.surface.Resize(cols, rows)
	m.program.SetViewport(cols, rows)
	m.help.Width = cols
	return m, nil
}

// handleTick runs one loop step and schedules the next.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	next, err := m.loop.Step(m.events.Poll())
	if errors.Is(err, loop.ErrClosed) {
		m.quitting = true
		m.surface.Close()
		return m, tea.Quit
	}
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(time.Until(next))
}

// Err returns the fatal loop error, if any.
func (m Model) Err() error {
	return m.err
}

// Loop returns the game loop driven by the model.
func (m Model) Loop() *loop.Loop {
	return m.loop
}

// View renders the last presented frame and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.surface.View() + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with the given model and returns the
// fatal loop error, if any.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen()) // Use alternate screen buffer

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fmt.Errorf("tui: game loop: %w", fm.err)
	}
	return nil
}
