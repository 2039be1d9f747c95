package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"eventoria/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := migrations.Up(cmd.Context(), db)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			log.Info().Msg("Schema is up to date")
			return nil
		}
		for _, name := range applied {
			log.Info().Str("migration", name).Msg("Migration applied")
		}
		return nil
	},
}
