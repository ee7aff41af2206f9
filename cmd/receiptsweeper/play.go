package main

import (
	"context"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/receiptsweeper/internal/app"
	"github.com/vancomm/receiptsweeper/internal/receipt"
	"github.com/vancomm/receiptsweeper/internal/session"
	"github.com/vancomm/receiptsweeper/internal/terminal"
)

var flagSeed uint64

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play one game in the terminal. Every action prints a receipt.

Enter a cell as a row letter and column digit in either order (A3, 3a) to
test it, prefix it with f to flag it (f A3), type new to start over and
quit to leave.

Games are kept in the configured store, in memory by default.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if !cfg.Development {
		log.SetLevel(logrus.WarnLevel)
	}

	st, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	strips := terminal.NewStrips(out)
	opts := []session.Option{session.WithPrinter(strips)}
	if flagSeed != 0 {
		opts = append(opts, session.WithRand(rand.New(rand.NewPCG(flagSeed, flagSeed))))
	}
	svc := session.New(st, receipt.NewFeed(cfg.FeedSize), log, opts...)

	return terminal.Play(ctx, svc, strips, cmd.InOrStdin(), out)
}
