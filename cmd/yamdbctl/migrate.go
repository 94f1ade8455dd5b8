// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/internal/platform/migration"
)

var steps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run database migrations to keep the schema in sync with the code.

Subcommands:
  up      - Apply pending migrations
  down    - Rollback migrations`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return migration.RunUp(database.DatabaseURL, database.MigrationPath, log)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback migrations",
	Long: `Rollback applied migrations.

Examples:
  yamdbctl migrate down              # Rollback last migration
  yamdbctl migrate down --steps 2    # Rollback two migrations`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return migration.RunDown(database.DatabaseURL, database.MigrationPath, steps, log)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	migrateDownCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to rollback")
}
