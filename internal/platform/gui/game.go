// Package gui runs a breakout session in a desktop window with Ebitengine.
// Ebitengine calls Update at the tick rate, so one Update is one session tick.
package gui

import (
	"context"
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

var (
	backgroundColor = color.RGBA{R: 16, G: 16, B: 24, A: 255}
	paddleColor     = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	ballColor       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	overlayColor    = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

// palette maps the brick row colors onto RGB.
var palette = map[core.Color]color.RGBA{
	core.ColorBrightRed:    {R: 235, G: 80, B: 80, A: 255},
	core.ColorBrightYellow: {R: 240, G: 210, B: 80, A: 255},
	core.ColorBrightCyan:   {R: 80, G: 210, B: 230, A: 255},
	core.ColorBrightGreen:  {R: 110, G: 220, B: 110, A: 255},
	core.ColorMagenta:      {R: 190, G: 90, B: 200, A: 255},
}

// keyBindings maps physical keys onto device-independent keys.
var keyBindings = []core.Binding[ebiten.Key]{
	{Key: core.KeyLeft, Physical: []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{Key: core.KeyRight, Physical: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
	{Key: core.KeySpace, Physical: []ebiten.Key{ebiten.KeySpace}},
	{Key: core.KeyRestart, Physical: []ebiten.Key{ebiten.KeyR}},
}

// Game implements ebiten.Game and the session's sinks.
type Game struct {
	ctx     context.Context
	session *breakout.Session
	ctl     *breakout.Controller
	logger  *log.Logger

	view    breakout.View
	score   int
	lives   int
	message string

	cursorX    int
	cursorSeen bool
}

func newGame(ctx context.Context, host registry.Host) *Game {
	logger := host.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cmds := host.Commands
	if cmds == nil {
		cmds = host.Session
	}
	cfg := host.Session.Config()

	g := &Game{
		ctx:     ctx,
		session: host.Session,
		ctl:     breakout.NewController(cmds, cfg.Paddle.Speed, cfg.Paddle.Width),
		logger:  logger,
		view:    host.Session.View(),
	}
	host.Session.Attach(breakout.Sinks{Renderer: g, Scoreboard: g, Messages: g})
	return g
}

func (g *Game) Render(v breakout.View) {
	if v.Phase != g.view.Phase {
		g.logger.Debug("phase changed", "from", g.view.Phase, "to", v.Phase, "tick", v.Tick)
	}
	g.view = v
}

func (g *Game) ScoreChanged(score int) { g.score = score }
func (g *Game) LivesChanged(lives int) { g.lives = lives }
func (g *Game) HideMessage()           { g.message = "" }

func (g *Game) GameOver(won bool) {
	g.message = "GAME OVER"
	if won {
		g.message = "YOU WIN!"
	}
	g.logger.Info("game over", "won", won, "score", g.score)
}

// Update feeds this frame's input to the controller and advances one tick.
func (g *Game) Update() error {
	if g.ctx.Err() != nil ||
		inpututil.IsKeyJustPressed(ebiten.KeyQ) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for _, b := range keyBindings {
		if b.Pressed(inpututil.IsKeyJustPressed) {
			if b.Key == core.KeyRestart {
				g.logger.Info("restart", "score", g.score, "tick", g.view.Tick)
			}
			g.ctl.KeyDown(b.Key)
		}
		// Arrow and letter share a Key; it is up only when both are.
		if b.Released(inpututil.IsKeyJustReleased, ebiten.IsKeyPressed) {
			g.ctl.KeyUp(b.Key)
		}
	}

	// Only actual motion steers the paddle; a resting cursor leaves the keys in charge.
	x, _ := ebiten.CursorPosition()
	if g.cursorSeen && x != g.cursorX {
		g.ctl.PointerMove(float64(x))
	}
	g.cursorX, g.cursorSeen = x, true

	g.session.Tick()
	return nil
}

// Draw paints the last View.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	v := g.view

	for _, b := range v.Bricks {
		if !b.Alive {
			continue
		}
		fillRect(screen, b.Rect, palette[core.RowColor(b.Row)])
	}
	fillRect(screen, v.Paddle, paddleColor)
	vector.DrawFilledCircle(screen, float32(v.Ball.X), float32(v.Ball.Y), float32(v.Ball.R), ballColor, true)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d", g.score), 8, 8)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LIVES %d", g.lives), int(v.Field.W)-64, 8)

	if text := g.overlayText(); text != "" {
		fillRect(screen, v.Field, overlayColor)
		ebitenutil.DebugPrintAt(screen, text, int(v.Field.W)/2-80, int(v.Field.H)/2)
	}
}

func (g *Game) overlayText() string {
	switch g.view.Phase {
	case breakout.PhaseIdle:
		return "SPACE to start, Q to quit"
	case breakout.PhasePaused:
		return "PAUSED - SPACE to resume"
	case breakout.PhaseOver:
		return fmt.Sprintf("%s  score %d - R to restart", g.message, g.score)
	}
	return ""
}

// Layout keeps the logical screen in field units; the window scales it.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.view.Field.W), int(g.view.Field.H)
}

func fillRect(dst *ebiten.Image, r core.Rect, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}
