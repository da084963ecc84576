package gui

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tui-breakout/internal/registry"
)

func init() {
	registry.Register("gui", func() registry.Frontend { return Frontend{} })
}

// Frontend plays a session in a desktop window.
type Frontend struct{}

// ID implements registry.Frontend.
func (Frontend) ID() string { return "gui" }

// Title implements registry.Frontend.
func (Frontend) Title() string { return "Window" }

// Run opens the window and blocks until it is closed.
func (Frontend) Run(ctx context.Context, host registry.Host) error {
	cfg := host.Session.Config()

	ebiten.SetWindowTitle("Breakout")
	ebiten.SetWindowSize(int(cfg.Field.Width), int(cfg.Field.Height))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if host.Runtime.TickRate > 0 {
		ebiten.SetTPS(host.Runtime.TickRate)
	}

	if err := ebiten.RunGame(newGame(ctx, host)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
