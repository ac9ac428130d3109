package main

import (
	"github.com/spf13/cobra"

	"github.com/LacerdaAcacio/agendei-booking/internal/infra/storage/migrations"
	"github.com/LacerdaAcacio/agendei-booking/pkg/dbmetrics"
	"github.com/LacerdaAcacio/agendei-booking/pkg/txmanager"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Close()
		defer db.Close()

		wrappedDB := dbmetrics.Wrap(db, nil)
		applied, err := migrations.Run(cmd.Context(), wrappedDB, txmanager.NewTransactionManager(wrappedDB), log)
		if err != nil {
			log.Error("Migration failed after %d applied: %v", applied, err)
			return err
		}

		log.Info("Migrations complete: %d applied", applied)
		return nil
	},
}
