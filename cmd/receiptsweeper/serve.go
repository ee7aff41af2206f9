package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vancomm/receiptsweeper/internal/app"
	"github.com/vancomm/receiptsweeper/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve the game API, the receipt feed websocket and the printer stub.

The store backend is picked by STORE_DRIVER (memory, sqlite, postgres,
redis). Postgres is migrated on startup.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg, log, err := setup()
	if err != nil {
		return err
	}

	log.Info("starting up")
	log.WithFields(cfg.Fields()).Debug("config")

	tickets, err := config.NewJWT(cfg.Development)
	if err != nil {
		return err
	}

	st, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := app.New(cfg, log, st, tickets).Start(ctx); err != nil {
		log.WithError(err).Error("exit reason")
		return err
	}
	log.Info("shut down")
	return nil
}
