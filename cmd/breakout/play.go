package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/replay"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagFrontend string
	flagRecord   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round in the chosen frontend.

Controls:
  Left/A, Right/D  - Move the paddle (the mouse works too)
  Space            - Start, pause and resume
  R                - Restart the round
  Q                - Quit

Difficulty options (a picker is shown when --difficulty is not given):
  easy   - 5 lives, wide paddle, slow ball
  normal - the configured values
  hard   - 2 lives, narrow paddle, fast ball

Examples:
  breakout play
  breakout play --frontend gui
  breakout play --difficulty hard --record
  breakout play --config ./my-breakout.toml --seed 7`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFrontend, "frontend", "tui", "Frontend to play in (see 'breakout list')")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the command journal for replay on exit")
}

func runPlay(cmd *cobra.Command, args []string) {
	if !registry.Exists(flagFrontend) {
		fmt.Fprintf(os.Stderr, "Error: unknown frontend %q\n", flagFrontend)
		fmt.Fprintln(os.Stderr, "Run 'breakout list' to see available frontends.")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	runtime := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}
	if flagFPS > 0 {
		runtime.TickRate = flagFPS
	}

	// No preset on the command line: ask for one when there is a terminal to ask on.
	if flagDifficulty == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		preset, ok, selErr := tui.RunDifficultySelector(cfg, runtime.ScreenW, runtime.ScreenH)
		if selErr != nil {
			fail("%v", selErr)
		}
		if !ok {
			return
		}
		flagDifficulty = string(preset)
		config.ApplyPreset(&cfg, preset)
	}

	runtime.Seed = flagSeed
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}
	seed := runtime.Seed

	// The frontend owns the terminal; logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	session, err := breakout.New(cfg, seed)
	if err != nil {
		fail("%v", err)
	}

	var (
		cmds     breakout.Commands = session
		recorder *replay.Recorder
	)
	if flagRecord {
		recorder = replay.NewRecorder(session)
		cmds = recorder
	}

	frontend, err := registry.Create(flagFrontend)
	if err != nil {
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("session started", "frontend", frontend.ID(), "seed", seed, "difficulty", flagDifficulty)
	runErr := frontend.Run(ctx, registry.Host{
		Session:  session,
		Commands: cmds,
		Runtime:  runtime,
		Config:   cfg,
		Logger:   logger,
	})
	logger.Info("session ended",
		"score", session.Score(),
		"outcome", session.Outcome(),
		"ticks", session.Ticks(),
	)

	if recorder != nil {
		id, err := saveRecording(frontend.ID(), cfg, session, recorder, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: recording not saved: %v\n", err)
		} else {
			fmt.Printf("Recording saved as #%d (replay with 'breakout replay %d')\n", id, id)
		}
	}

	if runErr != nil {
		fail("%v", runErr)
	}
	fmt.Printf("Score: %d  Outcome: %s\n", session.Score(), session.Outcome())
}

// saveRecording stores the session's journal and final state.
func saveRecording(
	frontendID string,
	cfg config.BreakoutConfig,
	session *breakout.Session,
	recorder *replay.Recorder,
	logger *log.Logger,
) (int64, error) {
	data, err := config.Encode(cfg)
	if err != nil {
		return 0, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	snap := session.Snapshot()
	id, err := store.SaveRecording(storage.Recording{
		Frontend: frontendID,
		Seed:     session.Seed(),
		Config:   data,
		Ticks:    session.Ticks(),
		Score:    session.Score(),
		Lives:    session.Lives(),
		Outcome:  session.Outcome().String(),
		Hash:     snap.Hash(),
		Snapshot: snap,
	}, recorder.Journal())
	if err != nil {
		return 0, err
	}

	logger.Info("recording saved", "id", id, "commands", recorder.Len(), "ticks", session.Ticks())
	return id, nil
}
