package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"eventoria/internal/domain"
	"eventoria/internal/repository"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.ToLower(strings.TrimSpace(viper.GetString("admin-email")))
		password := viper.GetString("admin-password")
		name := strings.TrimSpace(viper.GetString("admin-name"))

		admin, err := newAdmin(email, password, name)
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		users := repository.NewUserRepository(db)
		existing, err := users.GetByEmail(cmd.Context(), email)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("user %s already exists", email)
		}

		if err := users.Create(cmd.Context(), admin); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		log.Info().Str("user_id", admin.ID.String()).Str("email", email).Msg("Administrator created")
		return nil
	},
}

func newAdmin(email, password, name string) (*domain.User, error) {
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid --email is required")
	}
	if len(password) < 6 {
		return nil, errors.New("--password must have at least 6 characters")
	}
	if name == "" {
		name = "Administrator"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     name,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}, nil
}

func init() {
	createAdminCmd.Flags().String("email", "", "administrator email (env ADMIN_EMAIL)")
	createAdminCmd.Flags().String("password", "", "administrator password (env ADMIN_PASSWORD)")
	createAdminCmd.Flags().String("name", "Administrator", "display name")

	for flag, key := range map[string]string{"email": "admin-email", "password": "admin-password", "name": "admin-name"} {
		if err := viper.BindPFlag(key, createAdminCmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", flag, err))
		}
	}
}
