package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration a round would use, after --config and
--difficulty are applied, as YAML. Redirect it to a file to start a
custom config.

Examples:
  breakout config > ~/.breakout/breakout.yaml
  breakout config --difficulty hard`,
	Run: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	data, err := config.Encode(cfg)
	if err != nil {
		fail("%v", err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		fail("%v", err)
	}
}
