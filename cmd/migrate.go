package main

import (
	"fmt"
	"time"

	"github.com/Dosada05/doubles-tournament/config"
	"github.com/Dosada05/doubles-tournament/db"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Short:        "Apply the database schema",
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

			if err := db.Migrate(cmd.Context(), dbConn); err != nil {
				return err
			}
			logger.Info("schema applied")
			return nil
		},
	}
}

