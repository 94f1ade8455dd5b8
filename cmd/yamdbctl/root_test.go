// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/dataload"
)

func resetFlags(t *testing.T) {
	t.Helper()
	dbURL, migrationsDir = "", ""
	t.Cleanup(func() { dbURL, migrationsDir = "", "" })
}

func TestResolveDatabase(t *testing.T) {
	t.Run("flags win", func(t *testing.T) {
		resetFlags(t)
		t.Setenv("DATABASE_URL", "postgres://env")
		dbURL, migrationsDir = "postgres://flag", "/srv/migrations"

		db, err := resolveDatabase()
		require.NoError(t, err)
		assert.Equal(t, "postgres://flag", db.DatabaseURL)
		assert.Equal(t, "/srv/migrations", db.MigrationPath)
	})

	t.Run("environment fallback", func(t *testing.T) {
		resetFlags(t)
		t.Setenv("DATABASE_URL", "postgres://env")
		t.Setenv("MIGRATION_PATH", "/env/migrations")

		db, err := resolveDatabase()
		require.NoError(t, err)
		assert.Equal(t, "postgres://env", db.DatabaseURL)
		assert.Equal(t, "/env/migrations", db.MigrationPath)
	})

	t.Run("flag url keeps default path", func(t *testing.T) {
		resetFlags(t)
		dbURL = "postgres://flag"

		db, err := resolveDatabase()
		require.NoError(t, err)
		assert.Equal(t, "./data/migrations", db.MigrationPath)
	})

	t.Run("missing url", func(t *testing.T) {
		resetFlags(t)
		t.Setenv("DATABASE_URL", "")

		_, err := resolveDatabase()
		assert.Error(t, err)
	})
}

func TestPrintCounts(t *testing.T) {
	var out bytes.Buffer
	loadCmd.SetOut(&out)
	t.Cleanup(func() { loadCmd.SetOut(nil) })

	require.NoError(t, printCounts(loadCmd, dataload.Counts{Users: 3, Titles: 2}))
	assert.Contains(t, out.String(), "TABLE")
	assert.Regexp(t, `users\s+3`, out.String())
	assert.Regexp(t, `titles\s+2`, out.String())
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{{"migrate", "up"}, {"migrate", "down"}, {"createsuperuser"}, {"load"}, {"unload"}} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
