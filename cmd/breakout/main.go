// breakout is a single-screen ball-and-paddle game for the terminal and the desktop.
//
// Usage:
//
//	breakout play                 - Play in the terminal
//	breakout play --frontend gui  - Play in a window
//	breakout list                 - List available frontends
//	breakout recordings           - Browse recorded sessions
//	breakout replay <id>          - Re-simulate a recording and check it
//	breakout config               - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Load a YAML or TOML config file
//	--difficulty <name>   - Apply a preset: easy, normal, hard
//	--db <path>           - Set database path (default: ~/.breakout/recordings.db)
//	--log-file <path>     - Write logs to a file
//	--debug               - Enable debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"

	// Import frontends to register them
	_ "github.com/vovakirdan/tui-breakout/internal/platform/gui"
	_ "github.com/vovakirdan/tui-breakout/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagDBPath     string
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - bounce a ball, break the bricks",
	Long: `Breakout is a single-screen ball-and-paddle game. Clear every brick
before you run out of lives.

Available commands:
  play        - Play a round in the terminal or in a window
  list        - Show the available frontends
  recordings  - Browse recorded sessions
  replay      - Re-simulate a recorded session and verify it
  config      - Print the effective configuration

Examples:
  breakout play
  breakout play --frontend gui --difficulty easy
  breakout play --record --seed 42
  breakout recordings
  breakout replay 3`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breakout/recordings.db", "Path to recordings database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(recordingsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. fallback is used when no --log-file
// is given; full-screen frontends pass io.Discard so logs don't tear the UI.
// The returned close function is always safe to call.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, closeFn, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "breakout",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// loadConfig resolves --config and --difficulty into a validated config.
func loadConfig() (config.BreakoutConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.BreakoutConfig{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
