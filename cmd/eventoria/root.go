package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"eventoria/internal/config"
	"eventoria/internal/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:               "eventoria",
	Short:             "Eventoria maintenance CLI",
	Long:              `Applies schema migrations, seeds the category catalog and bootstraps administrator accounts.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupCommand,
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("database-url", "", "postgres connection string (env DATABASE_URL)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (env LOG_LEVEL)")

	for _, name := range []string{"database-url", "log-level"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", name, err))
		}
	}

	rootCmd.AddCommand(migrateCmd, seedCmd, createAdminCmd)
}

func initConfig() {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func setupCommand(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logging.SetDefault(logging.New(cfg.Environment, viper.GetString("log-level")))
	return nil
}

// loadConfig layers CLI flags over the environment configuration.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if url := viper.GetString("database-url"); url != "" {
		cfg.DatabaseURL = url
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database url is required (--database-url or DATABASE_URL)")
	}
	return cfg, nil
}

func openDB() (*sqlx.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}
