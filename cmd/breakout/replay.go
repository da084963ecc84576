package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded session",
	Long: `Rebuilds a recorded session from its config, seed and command journal
without any frontend, runs it for the recorded number of ticks and compares
the final state with the stored one. Exits with status 2 if they differ.

Examples:
  breakout replay 3
  breakout replay 3 --debug`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail("invalid recording id %q", args[0])
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening recordings database: %v", err)
	}
	defer store.Close()

	logger.Debug("replaying", "id", id)
	rec, snap, err := store.Verify(id)
	switch {
	case errors.Is(err, storage.ErrHashMismatch):
		logger.Error("replay diverged",
			"id", id,
			"stored_score", rec.Score,
			"replayed_score", snap.Score,
			"stored_outcome", rec.Outcome,
			"replayed_outcome", breakout.Outcome(snap.Outcome),
		)
		store.Close()
		os.Exit(2)
	case err != nil:
		store.Close()
		fail("%v", err)
	}

	fmt.Printf("Recording #%d (%s, seed %d, %d ticks)\n", rec.ID, rec.Frontend, rec.Seed, rec.Ticks)
	fmt.Printf("  Score:   %d\n", snap.Score)
	fmt.Printf("  Lives:   %d\n", snap.Lives)
	fmt.Printf("  Outcome: %s\n", breakout.Outcome(snap.Outcome))
	fmt.Printf("  Hash:    %016x OK\n", snap.Hash())
}
