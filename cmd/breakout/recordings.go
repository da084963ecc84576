package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
)

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "Browse recorded sessions",
	Long: `Lists sessions saved with 'breakout play --record'.

On a terminal this opens an interactive browser where a recording can be
verified or deleted. With --plain, or when output is not a terminal, the
list is printed as a table.

Examples:
  breakout recordings
  breakout recordings --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runRecordings,
}

func init() {
	recordingsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of recordings to print")
	recordingsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a table instead of the interactive browser")
}

func runRecordings(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening recordings database: %v", err)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunRecordings(store, width, height); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	recs, err := store.ListRecordings(flagLimit)
	if err != nil {
		store.Close()
		fail("retrieving recordings: %v", err)
	}
	if len(recs) == 0 {
		fmt.Println("No recordings yet. Run 'breakout play --record' to make one.")
		return
	}

	rows := make([]table.Row, len(recs))
	for i, r := range recs {
		rows[i] = tui.RecordingRow(r)
	}

	t := table.New(
		table.WithColumns(tui.RecordingColumns()),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	fmt.Println(t.View())
	fmt.Println()
	fmt.Println("Run 'breakout replay <id>' to verify a recording.")
}
