package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/tally/internal/config"
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
)

func TestNewAppBackends(t *testing.T) {
	for _, backend := range []string{constants.BackendSQLite, constants.BackendFiles} {
		t.Run(backend, func(t *testing.T) {
			cfg := config.NewDefault()
			cfg.Storage.Backend = backend
			cfg.Storage.Path = filepath.Join(t.TempDir(), "data")
			if backend == constants.BackendSQLite {
				cfg.Storage.Path = filepath.Join(cfg.Storage.Path, "tally.db")
			}

			a, cleanup, err := NewApp(context.Background(), cfg)
			require.NoError(t, err)
			_, err = a.Service.Account.CreateAccount(context.Background(), service.CreateAccountInput{Name: "Cash", Kind: model.Physical})
			require.NoError(t, err)
			cleanup()

			a, cleanup, err = NewApp(context.Background(), cfg)
			require.NoError(t, err)
			defer cleanup()
			accounts, err := a.Service.ListAccounts(context.Background())
			require.NoError(t, err)
			require.Len(t, accounts, 1)
			assert.Equal(t, "Cash", accounts[0].Name)
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Ledger.AllowDisableWithBalance = true
	cfg.Ledger.LockTimeout = time.Second
	cfg.Storage.RepairOnOpen = true

	opts := Options(cfg)
	assert.True(t, opts.Policy.AllowDisableWithBalance)
	assert.False(t, opts.Policy.AllowOverdraft)
	assert.Equal(t, time.Second, opts.LockTimeout)
	assert.True(t, opts.RepairOnOpen)
}

func TestStoragePath(t *testing.T) {
	p, err := StoragePath(config.StorageConfig{Backend: constants.BackendFiles, Path: "/x"})
	require.NoError(t, err)
	assert.Equal(t, "/x", p)

	p, err = StoragePath(config.StorageConfig{Backend: constants.BackendFiles})
	require.NoError(t, err)
	assert.Equal(t, constants.FilesDirName, filepath.Base(p))

	p, err = StoragePath(config.StorageConfig{Backend: constants.BackendSQLite})
	require.NoError(t, err)
	assert.Equal(t, constants.DBFileName, filepath.Base(p))

	_, err = OpenBackend(config.StorageConfig{Backend: "etcd", Path: t.TempDir()})
	assert.Error(t, err)
}

func TestLazyOpensOnce(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Storage.Backend = constants.BackendFiles
	cfg.Storage.Path = t.TempDir()

	get, cleanup := Lazy(context.Background(), cfg)
	first, err := get()
	require.NoError(t, err)
	second, err := get()
	require.NoError(t, err)
	assert.Same(t, first, second)
	cleanup()

	// the lock is released by cleanup
	a, done, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, a)
	done()
}

func TestSeedDefaultAccount(t *testing.T) {
	for _, backend := range []string{constants.BackendSQLite, constants.BackendFiles} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := config.NewDefault()
			cfg.Storage.Backend = backend
			cfg.Storage.Path = filepath.Join(t.TempDir(), "ledger")

			a, cleanup, err := NewApp(ctx, cfg)
			require.NoError(t, err)
			seeded, err := a.SeedDefaultAccount(ctx)
			require.NoError(t, err)
			assert.True(t, seeded)
			cleanup()

			a, cleanup, err = NewApp(ctx, cfg)
			require.NoError(t, err)
			defer cleanup()
			seeded, err = a.SeedDefaultAccount(ctx)
			require.NoError(t, err)
			assert.False(t, seeded)

			accounts, err := a.Service.ListAccounts(ctx)
			require.NoError(t, err)
			require.Len(t, accounts, 1)
			acc := accounts[0]
			assert.Equal(t, constants.DefaultVirtualName, acc.Name)
			assert.Equal(t, constants.DefaultVirtualNotes, acc.Notes)
			assert.Equal(t, model.Virtual, acc.Kind)
			assert.True(t, acc.Enabled)
			assert.True(t, acc.Balances.IsZero())
		})
	}
}

func TestSeedDefaultAccountSkipsUsedLedger(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewDefault()
	cfg.Storage.Backend = constants.BackendFiles
	cfg.Storage.Path = t.TempDir()

	a, cleanup, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	defer cleanup()
	_, err = a.Service.Account.CreateAccount(ctx, service.CreateAccountInput{Name: "Cash", Kind: model.Physical})
	require.NoError(t, err)

	seeded, err := a.SeedDefaultAccount(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
	accounts, err := a.Service.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}
