package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/pkg/database"
	"github.com/d60-Lab/yatube/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := database.InitDB(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()
		if err := database.Migrate(db); err != nil {
			return err
		}
		logger.Info("schema migrated", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}
