package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// Model is the Bubble Tea model for running a breakout session.
type Model struct {
	session  *breakout.Session
	ctl      *breakout.Controller
	hud      *hud
	holds    *holdTracker
	keys     KeyMap
	help     help.Model
	screen   *core.Screen
	runtime  core.RuntimeConfig
	logger   *log.Logger
	now      func() time.Time
	quitting bool
}

// NewModel creates a model driving host.Session. Input goes through
// host.Commands when set, so a recorder sees every command.
func NewModel(host registry.Host) Model {
	logger := host.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cmds := host.Commands
	if cmds == nil {
		cmds = host.Session
	}
	cfg := host.Session.Config()

	h := &hud{view: host.Session.View(), logger: logger}
	host.Session.Attach(breakout.Sinks{Renderer: h, Scoreboard: h, Messages: h})

	return Model{
		session: host.Session,
		ctl:     breakout.NewController(cmds, cfg.Paddle.Speed, cfg.Paddle.Width),
		hud:     h,
		holds:   newHoldTracker(time.Duration(cfg.Input.KeyReleaseMS) * time.Millisecond),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		screen:  core.NewScreen(host.Runtime.ScreenW, host.Runtime.ScreenH),
		runtime: host.Runtime,
		logger:  logger,
		now:     time.Now,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch k := m.keys.Map(msg); {
	case k == core.KeyQuit:
		m.quitting = true
		return m, tea.Quit
	case k.IsDirectional():
		if m.holds.Press(k, m.now()) {
			m.ctl.KeyDown(k)
		}
	case k == core.KeyRestart:
		m.logger.Info("restart", "score", m.session.Score(), "tick", m.session.Ticks())
		m.ctl.KeyDown(k)
	case k != core.KeyNone:
		m.ctl.KeyDown(k)
	}
	return m, nil
}

// handleMouse steers the paddle toward the pointer column.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
		return m, nil
	}
	l := newLayout(m.runtime.ScreenW, m.fieldHeight(), m.session.View().Field)
	m.ctl.PointerMove(l.fieldX(msg.X))
	return m, nil
}

// handleTick releases keys that stopped repeating, then advances the session.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, k := range m.holds.Expired(now) {
		m.ctl.KeyUp(k)
	}
	m.session.Tick()
	return m, tickCmd(m.runtime.TickRate)
}

// fieldHeight is the screen height left after the help footer.
func (m Model) fieldHeight() int {
	return m.runtime.ScreenH - lipgloss.Height(m.help.View(m.keys))
}

// saveScreenshot writes the current frame as plain text.
func (m Model) saveScreenshot() (string, error) {
	m.screen.Resize(m.runtime.ScreenW, m.fieldHeight())
	m.hud.draw(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".breakout", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("breakout_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current frame and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Resize(m.runtime.ScreenW, m.fieldHeight())
	m.hud.draw(m.screen)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}
