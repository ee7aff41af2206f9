// receiptsweeper is Minesweeper played one receipt at a time.
//
// Usage:
//
//	receiptsweeper serve     - Serve the HTTP API
//	receiptsweeper play      - Play in the terminal
//	receiptsweeper migrate   - Apply postgres migrations
//
// Global flags:
//
//	--config <path>  - YAML config file; environment variables override it
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/receiptsweeper/internal/config"
)

var flagConfig string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "receiptsweeper",
	Short: "Minesweeper on a receipt printer",
	Long: `Receiptsweeper is a 10x10 Minesweeper with 15 mines. Every action
prints a receipt strip showing the board, the action and its outcome.

Examples:
  receiptsweeper serve
  receiptsweeper play --seed 42
  receiptsweeper migrate
  receiptsweeper --config ./receiptsweeper.yaml serve`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(migrateCmd)
}

func setup() (*config.App, *logrus.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	log, err := config.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
