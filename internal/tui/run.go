package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hailam/gridchess/internal/console"
	"github.com/hailam/gridchess/internal/session"
)

// Run starts the terminal UI on reg. saved may be nil.
func Run(reg *session.Registry, saved console.GameLister) error {
	p := tea.NewProgram(NewModel(reg, saved), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
