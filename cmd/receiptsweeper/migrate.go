package main

import (
	"github.com/spf13/cobra"

	"github.com/vancomm/receiptsweeper/internal/config"
	"github.com/vancomm/receiptsweeper/internal/database"
)

var flagDown int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply postgres migrations",
	Long: `Apply every pending migration to the database named by DATABASE_URL
or the POSTGRES_* variables. With --down N, roll back N migrations instead.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().IntVar(&flagDown, "down", 0, "Number of migrations to roll back")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	_, log, err := setup()
	if err != nil {
		return err
	}

	url, err := config.PostgresURL()
	if err != nil {
		return err
	}

	if flagDown > 0 {
		if err := database.Rollback(url, flagDown); err != nil {
			return err
		}
		log.Infof("rolled back %d migration(s)", flagDown)
		return nil
	}

	if err := database.Migrate(url); err != nil {
		return err
	}
	log.Info("database is up to date")
	return nil
}
