package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/registry"
)

func init() {
	registry.Register("tui", func() registry.Frontend { return Frontend{} })
}

// Frontend plays a session in the terminal.
type Frontend struct{}

// ID implements registry.Frontend.
func (Frontend) ID() string { return "tui" }

// Title implements registry.Frontend.
func (Frontend) Title() string { return "Terminal" }

// Run starts the Bubble Tea program and blocks until the player quits.
func (Frontend) Run(ctx context.Context, host registry.Host) error {
	p := tea.NewProgram(
		NewModel(host),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
