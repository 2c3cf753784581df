// Package tui runs the game in a terminal through Bubble Tea, locally or
// over SSH via Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game loop tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick message after d.
// The loop decides d, so ticks are scheduled from the end of the previous one.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(max(d, 0), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
