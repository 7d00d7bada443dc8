package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/KingsBarber-BookingService/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply embedded database migrations",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Close()

	db, err := openDB(cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := migrations.Apply(cmd.Context(), db, log)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info("Migrations applied: %d", applied)
	return nil
}
