package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

const (
	brickRune  = '█'
	paddleRune = '▀'
	ballRune   = '●'
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// hud is the session's sink: it keeps the last frame plus whatever the
// scoreboard and message callbacks reported.
type hud struct {
	view    breakout.View
	score   int
	lives   int
	message string
	logger  *log.Logger
}

func (h *hud) Render(v breakout.View) {
	if v.Phase != h.view.Phase {
		h.logger.Debug("phase changed", "from", h.view.Phase, "to", v.Phase, "tick", v.Tick)
	}
	h.view = v
}

func (h *hud) ScoreChanged(score int) { h.score = score }
func (h *hud) LivesChanged(lives int) { h.lives = lives }

func (h *hud) GameOver(won bool) {
	if won {
		h.message = "YOU WIN!"
	} else {
		h.message = "GAME OVER"
	}
	h.logger.Info("game over", "won", won, "score", h.score)
}

func (h *hud) HideMessage() { h.message = "" }

// layout maps field units onto the cells inside the field border.
// Row 0 holds the HUD and the border starts on row 1.
type layout struct {
	x0, y0 int // top-left inner cell
	w, h   int // inner size in cells
	sx, sy float64
}

func newLayout(screenW, screenH int, field core.Rect) layout {
	w := core.Max(screenW-2, 1)
	h := core.Max(screenH-3, 1)
	return layout{
		x0: 1,
		y0: 2,
		w:  w,
		h:  h,
		sx: float64(w) / field.W,
		sy: float64(h) / field.H,
	}
}

// cell returns the screen cell holding field point (x, y).
func (l layout) cell(x, y float64) (int, int) {
	cx := core.Clamp(int(math.Floor(x*l.sx)), 0, l.w-1)
	cy := core.Clamp(int(math.Floor(y*l.sy)), 0, l.h-1)
	return l.x0 + cx, l.y0 + cy
}

// rect returns the cell area covering r, at least one cell, clipped to the field.
func (l layout) rect(r core.Rect) (x, y, w, h int) {
	x0 := int(math.Floor(r.X * l.sx))
	y0 := int(math.Floor(r.Y * l.sy))
	x1 := int(math.Floor(r.Right() * l.sx))
	y1 := int(math.Floor(r.Bottom() * l.sy))

	x0 = core.Clamp(x0, 0, l.w-1)
	y0 = core.Clamp(y0, 0, l.h-1)
	w = core.Clamp(x1-x0, 1, l.w-x0)
	h = core.Clamp(y1-y0, 1, l.h-y0)
	return l.x0 + x0, l.y0 + y0, w, h
}

// fieldX converts a screen column to the field x at the centre of that column.
func (l layout) fieldX(col int) float64 {
	return (float64(col-l.x0) + 0.5) / l.sx
}

// draw paints the HUD, field and overlay into dst.
func (h *hud) draw(dst *core.Screen) {
	dst.Clear()
	v := h.view
	l := newLayout(dst.Width(), dst.Height(), v.Field)

	h.drawHUD(dst)
	dst.DrawBox(0, 1, dst.Width(), dst.Height()-1)

	for _, b := range v.Bricks {
		if !b.Alive {
			continue
		}
		x, y, w, bh := l.rect(b.Rect)
		dst.DrawRect(x, y, w, bh, brickRune, core.RowColor(b.Row))
	}

	x, y, w, _ := l.rect(v.Paddle)
	dst.DrawRect(x, y, w, 1, paddleRune, core.ColorBrightWhite)

	bx, by := l.cell(v.Ball.X, v.Ball.Y)
	dst.SetColored(bx, by, ballRune, core.ColorBrightWhite)

	if lines := h.overlay(); len(lines) > 0 {
		drawOverlay(dst, l, lines)
	}
}

func (h *hud) drawHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("SCORE %d", h.score), core.ColorBrightYellow)

	lives := fmt.Sprintf("LIVES %s", strings.Repeat("♥", core.Max(h.lives, 0)))
	dst.DrawTextColored(dst.Width()-len([]rune(lives))-1, 0, lives, core.ColorBrightRed)

	dst.DrawTextCentered(0, strings.ToUpper(h.view.Phase.String()))
}

// overlay returns the message box lines for the current phase, if any.
func (h *hud) overlay() []string {
	switch h.view.Phase {
	case breakout.PhaseIdle:
		return []string{"BREAKOUT", "", "space to start"}
	case breakout.PhasePaused:
		return []string{"PAUSED", "", "space to resume"}
	case breakout.PhaseOver:
		msg := h.message
		if msg == "" {
			msg = h.view.Outcome.String()
		}
		return []string{msg, fmt.Sprintf("score %d", h.score), "", "r to play again"}
	}
	return nil
}

func drawOverlay(dst *core.Screen, l layout, lines []string) {
	width := 0
	for _, line := range lines {
		width = core.Max(width, len([]rune(line)))
	}
	bw, bh := width+6, len(lines)+2
	x0 := l.x0 + (l.w-bw)/2
	y0 := l.y0 + (l.h-bh)/2

	dst.DrawRect(x0, y0, bw, bh, ' ', core.ColorDefault)
	dst.DrawBox(x0, y0, bw, bh)
	for i, line := range lines {
		lx := x0 + (bw-len([]rune(line)))/2
		dst.DrawTextColored(lx, y0+1+i, line, core.ColorBrightWhite)
	}
}
