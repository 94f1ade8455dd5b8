// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	pgstore "github.com/taibuivan/yamdb/internal/platform/postgres"
)

var (
	// Persistent flags
	dbURL         string
	migrationsDir string
	verbose       bool

	// Set during PersistentPreRunE
	database *config.Database
	log      *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "yamdbctl",
	Short: "Operate a YaMDb database",
	Long: `yamdbctl manages the YaMDb database outside the API server.

It applies schema migrations, creates superusers and moves CSV fixture
data in and out of PostgreSQL.`,
	Version: constants.AppVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
			With(slog.String("app", "yamdbctl"))

		var err error
		database, err = resolveDatabase()
		return err
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (default: $DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "migrations-dir", "", "Directory for migration files (default: $MIGRATION_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(migrateCmd, createSuperuserCmd, loadCmd, unloadCmd)
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveDatabase applies flag > environment precedence.
func resolveDatabase() (*config.Database, error) {
	resolved := &config.Database{DatabaseURL: dbURL, MigrationPath: migrationsDir}

	if resolved.DatabaseURL == "" {
		fromEnv, err := config.LoadDatabase()
		if err != nil {
			return nil, err
		}
		resolved.DatabaseURL = fromEnv.DatabaseURL
		if resolved.MigrationPath == "" {
			resolved.MigrationPath = fromEnv.MigrationPath
		}
	}

	if resolved.MigrationPath == "" {
		resolved.MigrationPath = "./data/migrations"
	}

	return resolved, nil
}

// withPool opens a pool for the duration of fn.
func withPool(ctx context.Context, fn func(pool *pgxpool.Pool) error) error {
	pool, err := pgstore.NewPool(ctx, database.DatabaseURL, log,
		pgstore.WithMaxConns(2),
		pgstore.WithStatementTimeout(0),
	)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(pool)
}
