package main

import (
	"fmt"
	"time"

	"github.com/Dosada05/doubles-tournament/config"
	"github.com/Dosada05/doubles-tournament/db"
	"github.com/Dosada05/doubles-tournament/models"
	"github.com/Dosada05/doubles-tournament/repositories"
	"github.com/Dosada05/doubles-tournament/services"
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage API users",
	}

	var email, password string
	createAdminCmd := &cobra.Command{
		Use:          "create-admin",
		Short:        "Create a user that can manage tournaments",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)

			dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer dbConn.Close()

			auth := services.NewAuthService(repositories.NewPostgresUserRepository(dbConn), cfg.JWTSecretKey, logger)
			user, err := auth.CreateUser(cmd.Context(), services.CreateUserInput{
				Email:    email,
				Password: password,
				Role:     models.RoleAdmin,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created admin %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
	createAdminCmd.Flags().StringVar(&email, "email", "", "Admin email address")
	createAdminCmd.Flags().StringVar(&password, "password", "", "Admin password")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")

	userCmd.AddCommand(createAdminCmd)
	return userCmd
}
