package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/career-path/config"
)

func TestSetupLogger(t *testing.T) {
	logger, err := setupLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = setupLogger("loud")
	assert.Error(t, err)
}

func TestLoadTables(t *testing.T) {
	tables, err := loadTables("")
	require.NoError(t, err)
	assert.NotEmpty(t, tables.Universities)

	_, err = loadTables(t.TempDir())
	assert.Error(t, err)
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestNewGameAndInspect(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Server.LogLevel = "error"
	cfg.Storage.DSN = filepath.Join(dir, "saves")
	path := filepath.Join(dir, "config.json")
	require.NoError(t, config.SaveConfig(cfg, path))

	out := run(t, "--config", path, "inspect")
	assert.Contains(t, out, "No saved games")

	out = run(t, "--config", path, "new-game", "first", "--name", "Nigar", "--gender", "female")
	assert.Contains(t, out, "in slot first")

	out = run(t, "--config", path, "inspect")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "character_creation")

	out = run(t, "--config", path, "inspect", "first")
	assert.Contains(t, out, "Nigar, character creation")
}
