package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

const maxRecordings = 100

// RecordingStore is the part of storage.Store the browser needs.
type RecordingStore interface {
	ListRecordings(limit int) ([]storage.Recording, error)
	Verify(id int64) (*storage.Recording, breakout.Snapshot, error)
	DeleteRecording(id int64) error
}

// RecordingsKeyMap defines the key bindings for the recordings browser.
type RecordingsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Verify key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RecordingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Verify, k.Delete, k.Quit},
	}
}

// DefaultRecordingsKeyMap returns default key bindings.
func DefaultRecordingsKeyMap() RecordingsKeyMap {
	return RecordingsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordingsModel is the Bubble Tea model for browsing saved recordings.
type RecordingsModel struct {
	store    RecordingStore
	recs     []storage.Recording
	table    table.Model
	help     help.Model
	keys     RecordingsKeyMap
	status   string
	width    int
	height   int
	quitting bool
}

// NewRecordingsModel creates a browser over store.
func NewRecordingsModel(store RecordingStore, width, height int) RecordingsModel {
	m := RecordingsModel{
		store:  store,
		keys:   DefaultRecordingsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// RecordingColumns are the columns shared by the browser and the plain listing.
func RecordingColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Date", Width: 13},
		{Title: "Frontend", Width: 8},
		{Title: "Seed", Width: 20},
		{Title: "Ticks", Width: 8},
		{Title: "Outcome", Width: 7},
		{Title: "Score", Width: 6},
	}
}

// RecordingRow formats one recording for RecordingColumns.
func RecordingRow(r storage.Recording) table.Row {
	return table.Row{
		strconv.FormatInt(r.ID, 10),
		r.CreatedAt.Format("Jan 02 15:04"),
		r.Frontend,
		strconv.FormatInt(r.Seed, 10),
		strconv.FormatUint(r.Ticks, 10),
		r.Outcome,
		strconv.Itoa(r.Score),
	}
}

func (m *RecordingsModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(RecordingColumns()),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-7, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load refreshes the table from the store.
func (m *RecordingsModel) load() {
	recs, err := m.store.ListRecordings(maxRecordings)
	if err != nil {
		m.status = err.Error()
		recs = nil
	}
	m.recs = recs

	rows := make([]table.Row, len(recs))
	for i, r := range recs {
		rows[i] = RecordingRow(r)
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoBottom()
	}
}

// selected returns the recording under the cursor.
func (m RecordingsModel) selected() (storage.Recording, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.recs) {
		return storage.Recording{}, false
	}
	return m.recs[i], true
}

// Init initializes the browser.
func (m RecordingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m RecordingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			if rec, ok := m.selected(); ok {
				m.status = m.verify(rec.ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if rec, ok := m.selected(); ok {
				if err := m.store.DeleteRecording(rec.ID); err != nil {
					m.status = err.Error()
				} else {
					m.status = fmt.Sprintf("deleted recording %d", rec.ID)
				}
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m RecordingsModel) verify(id int64) string {
	_, snap, err := m.store.Verify(id)
	switch {
	case errors.Is(err, storage.ErrHashMismatch):
		return fmt.Sprintf("recording %d DIVERGED (score %d at tick %d)", id, snap.Score, snap.Tick)
	case err != nil:
		return err.Error()
	}
	return fmt.Sprintf("recording %d ok: score %d, %s", id, snap.Score, breakout.Outcome(snap.Outcome))
}

// View renders the browser.
func (m RecordingsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("RECORDINGS"))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.recs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No recordings yet.\nRun `breakout play --record` to make one.")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunRecordings runs the recordings browser.
func RunRecordings(store RecordingStore, width, height int) error {
	p := tea.NewProgram(
		NewRecordingsModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
