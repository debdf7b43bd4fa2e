package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/seed"
	"github.com/d60-Lab/yatube/pkg/database"
	"github.com/d60-Lab/yatube/pkg/logger"
)

var seedOpts seed.Options

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with demo users, groups, posts and follows",
	RunE: func(cmd *cobra.Command, _ []string) error {
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

		res, err := seed.Run(cmd.Context(), db, seedOpts)
		if err != nil {
			return err
		}
		logger.Info("seed done",
			zap.Int("users", res.Users),
			zap.Int("groups", res.Groups),
			zap.Int("posts", res.Posts),
			zap.Int("follows", res.Follows),
		)
		return nil
	},
}

func init() {
	f := seedCmd.Flags()
	f.IntVar(&seedOpts.Users, "users", 20, "number of users")
	f.IntVar(&seedOpts.Groups, "groups", 3, "number of groups")
	f.IntVar(&seedOpts.PostsPerUser, "posts-per-user", 5, "average posts per user")
	f.IntVar(&seedOpts.FollowsPerUser, "follows-per-user", 3, "authors each user follows")
	f.StringVar(&seedOpts.Password, "password", "password123", "password of every seeded account")
	f.Int64Var(&seedOpts.Seed, "rand-seed", 1, "random seed")
}
