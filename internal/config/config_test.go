package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, NewDefault(), cfg)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  backend: files
  path: /tmp/ledger
ledger:
  lock_timeout: 250ms
defaults:
  currency: GBP
`), 0o644))
	t.Setenv("TALLY_LEDGER_ALLOW_OVERDRAFT", "true")
	t.Setenv("TALLY_STORAGE_REPAIR_ON_OPEN", "true")

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "files", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/ledger", cfg.Storage.Path)
	assert.True(t, cfg.Storage.RepairOnOpen)
	assert.True(t, cfg.Ledger.AllowOverdraft)
	assert.Equal(t, 250*time.Millisecond, cfg.Ledger.LockTimeout)
	assert.Equal(t, "GBP", cfg.Defaults.Currency)
	assert.Equal(t, path, cfg.ConfigPath)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TALLY_STORAGE_BACKEND=files\n"), 0o644))
	t.Setenv("TALLY_STORAGE_BACKEND", "")
	require.NoError(t, os.Unsetenv("TALLY_STORAGE_BACKEND"))

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path))
	cfg, err := Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, "files", cfg.Storage.Backend)
}

func TestValidate(t *testing.T) {
	cfg := NewDefault()
	cfg.Storage.Backend = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = NewDefault()
	cfg.Defaults.Currency = "eur"
	assert.Error(t, cfg.Validate())

	cfg = NewDefault()
	cfg.Ledger.LockTimeout = -time.Second
	assert.Error(t, cfg.Validate())
}
