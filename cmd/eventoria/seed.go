package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"eventoria/internal/repository"
	"eventoria/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data",
}

var seedCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Upsert the built-in service categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := seed.Categories()
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := seed.Apply(cmd.Context(), repository.NewCategoryRepository(db), categories)
		if err != nil {
			return err
		}
		log.Info().Int("count", n).Msg("Categories seeded")
		return nil
	},
}

func init() {
	seedCmd.AddCommand(seedCategoriesCmd)
}
