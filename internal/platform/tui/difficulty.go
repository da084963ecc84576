package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

// difficultyOption is one row of the difficulty picker.
type difficultyOption struct {
	preset config.DifficultyPreset
	label  string
	detail string
}

// describePreset summarises what a preset does to base.
func describePreset(base config.BreakoutConfig, p config.DifficultyPreset) string {
	cfg := base
	config.ApplyPreset(&cfg, p)
	return fmt.Sprintf("%d lives, paddle %g, ball speed %g", cfg.Gameplay.Lives, cfg.Paddle.Width, cfg.Ball.Speed)
}

// DifficultyModel lets the player choose a difficulty preset before a round.
type DifficultyModel struct {
	options  []difficultyOption
	cursor   int
	width    int
	height   int
	up       key.Binding
	down     key.Binding
	selectK  key.Binding
	quit     key.Binding
	chosen   bool
	quitting bool
}

// NewDifficultyModel creates a picker whose details reflect base.
func NewDifficultyModel(base config.BreakoutConfig, width, height int) DifficultyModel {
	presets := []struct {
		p     config.DifficultyPreset
		label string
	}{
		{config.DifficultyEasy, "Easy"},
		{config.DifficultyNormal, "Normal"},
		{config.DifficultyHard, "Hard"},
	}
	options := make([]difficultyOption, len(presets))
	for i, p := range presets {
		options[i] = difficultyOption{preset: p.p, label: p.label, detail: describePreset(base, p.p)}
	}

	return DifficultyModel{
		options: options,
		cursor:  1, // Normal
		width:   width,
		height:  height,
		up:      key.NewBinding(key.WithKeys("up", "w", "k")),
		down:    key.NewBinding(key.WithKeys("down", "s", "j")),
		selectK: key.NewBinding(key.WithKeys("enter", " ")),
		quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.down):
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.selectK):
			m.chosen = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the picker.
func (m DifficultyModel) View() string {
	if m.quitting || m.chosen {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("B R E A K O U T"), m.width, 15))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width, 18))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		line := fmt.Sprintf("  %-7s %s", opt.label, opt.detail)
		if i == m.cursor {
			line = activeStyle.Render(fmt.Sprintf("> %-7s %s", opt.label, opt.detail))
		}
		b.WriteString(centerText(line, m.width, lipgloss.Width(line)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(centerText("Enter: Select  |  Q: Quit", m.width, 25)))
	return b.String()
}

// Selected returns the chosen preset and whether one was chosen.
func (m DifficultyModel) Selected() (config.DifficultyPreset, bool) {
	if !m.chosen {
		return "", false
	}
	return m.options[m.cursor].preset, true
}

// RunDifficultySelector asks for a preset. ok is false if the player quit.
func RunDifficultySelector(base config.BreakoutConfig, width, height int) (preset config.DifficultyPreset, ok bool, err error) {
	p := tea.NewProgram(
		NewDifficultyModel(base, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}
	m, isModel := finalModel.(DifficultyModel)
	if !isModel {
		return "", false, nil
	}
	preset, ok = m.Selected()
	return preset, ok, nil
}

// centerText pads text of visible width textWidth to the middle of width.
func centerText(text string, width, textWidth int) string {
	if textWidth >= width {
		return text
	}
	return strings.Repeat(" ", (width-textWidth)/2) + text
}
