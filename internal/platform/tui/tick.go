// Package tui provides the Bubble Tea integration for the game platform.
// It handles the terminal UI loop, input mapping, and screen navigation.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// ID ties the tick to the loop that scheduled it.
type TickMsg struct {
	Time time.Time
	ID   uint64
}

var lastLoopID atomic.Uint64

// nextLoopID returns a fresh tick loop id.
func nextLoopID() uint64 {
	return lastLoopID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends a tick at the specified rate.
func tickCmd(tickRate int, id uint64) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, ID: id}
	})
}
