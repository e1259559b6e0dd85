package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.VAT.Percentage = 7
	cfg.VAT.InAccount = "USt_Einnahmen"
	cfg.Display.Width = 120

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Database, got.Database)
	assert.Equal(t, cfg.Log, got.Log)
	assert.Equal(t, 7, got.VAT.Percentage)
	assert.Equal(t, "USt_Einnahmen", got.VAT.InAccount)
	assert.Equal(t, "VAT_OUT", got.VAT.OutAccount)
	assert.Equal(t, cfg.Import.Format, got.Import.Format)
	assert.Equal(t, cfg.Invoices.DateFormat, got.Invoices.DateFormat)
	assert.Equal(t, 120, got.Display.Width)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "kontor.db", cfg.Database)
	assert.Equal(t, "kontor.log", cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 19, cfg.VAT.Percentage)
	assert.Equal(t, "VAT_IN", cfg.VAT.InAccount)
	assert.Equal(t, "VAT_OUT", cfg.VAT.OutAccount)
	assert.Equal(t, "kontor", cfg.Import.Format)
	assert.Equal(t, "02.01.2006", cfg.Invoices.DateFormat)
	assert.Equal(t, 80, cfg.Display.Width)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("vat:\n  percentage: 7\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.VAT.Percentage)
	assert.Equal(t, "VAT_IN", cfg.VAT.InAccount)
	assert.Equal(t, "kontor.db", cfg.Database)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDir_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadDir(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, Default().Database, cfg.Database)
}

func TestLoadDir_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(filepath.Join(dir, FileName), Default()))
	t.Setenv("KONTOR_DATABASE", "books.db")
	t.Setenv("KONTOR_VAT_PERCENTAGE", "16")

	cfg, err := LoadDir(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "books.db", cfg.Database)
	assert.Equal(t, 16, cfg.VAT.Percentage)
}

func TestLoadDir_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("KONTOR_LOG_LEVEL=debug\n"), 0o644))
	// godotenv never overrides variables that are already set; make sure it is unset
	// for this test and restored afterwards.
	t.Setenv("KONTOR_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("KONTOR_LOG_LEVEL"))

	cfg, err := LoadDir(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadDir_BadPercentage(t *testing.T) {
	t.Setenv("KONTOR_VAT_PERCENTAGE", "nineteen")
	_, err := LoadDir(t.TempDir(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KONTOR_VAT_PERCENTAGE")
}

func TestPaths(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/books", "kontor.db"), cfg.DatabasePath("/books"))
	assert.Equal(t, filepath.Join("/books", "kontor.log"), cfg.LogPath("/books"))

	cfg.Database = "/var/lib/kontor/main.db"
	assert.Equal(t, "/var/lib/kontor/main.db", cfg.DatabasePath("/books"))
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "database: kontor.db")
	assert.Contains(t, contents, "in_account: VAT_IN")
	assert.Contains(t, contents, "02.01.2006")
}
