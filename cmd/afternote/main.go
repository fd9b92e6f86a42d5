package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/afternote/internal/config"
	"github.com/xxxsen/afternote/internal/db"
	"github.com/xxxsen/afternote/internal/pkg/jwt"
)

func main() {
	var configPath string
	var tokenUser string

	rootCmd := &cobra.Command{
		Use:   "afternote",
		Short: "afternote study content server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run afternote server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			handle, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer handle.Close()
			return runServer(cfg, handle)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			handle, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer handle.Close()
			logutil.GetLogger(context.Background()).Info("migrations applied", zap.String("driver", handle.Driver()))
			return nil
		},
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "issue an identity token for a user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			token, err := jwt.GenerateToken(tokenUser, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id to embed in the token")
	_ = tokenCmd.MarkFlagRequired("user")

	for _, cmd := range []*cobra.Command{runCmd, migrateCmd, tokenCmd} {
		cmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
		rootCmd.AddCommand(cmd)
	}

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", path))
	return cfg, nil
}

func openDatabase(cfg *config.Config) (*db.Handle, error) {
	handle, err := db.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.ApplyMigrations(handle); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return handle, nil
}
