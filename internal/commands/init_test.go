package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanpull-dev/beanpull/internal/config"
)

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "Personal", "personal.beancount"))

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, "Personal", cfg.Budget.Name)
	assert.Equal(t, "personal.beancount", cfg.Ledger.Path)
	assert.Equal(t, "Assets", cfg.Ledger.AssetPrefix)
}

func TestRunInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("budget:\n  name: Existing\n"), 0o644))

	err := runInit(dir, "Personal", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestParseSince(t *testing.T) {
	got, err := parseSince("2026-01-15")
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())

	got, err = parseSince("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = parseSince("15/01/2026")
	require.Error(t, err)
}
