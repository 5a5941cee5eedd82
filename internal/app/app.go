package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hance08/tally/internal/config"
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/ledger"
	"github.com/hance08/tally/internal/logger"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/store"
)

type App struct {
	Service *service.Service
	Store   store.Backend
	Config  *config.Config
}

// NewApp opens the configured backend, replays the ledger and returns the App entity
func NewApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	backend, err := OpenBackend(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}

	svc, err := service.Open(ctx, backend, Options(cfg), logger.Get())
	if err != nil {
		_ = backend.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := svc.Close(); err != nil {
			logger.Get().Errorw("failed to close store", "error", err)
		}
	}

	return &App{
		Service: svc,
		Store:   backend,
		Config:  cfg,
	}, cleanup, nil
}

// SeedDefaultAccount creates the default virtual account when the ledger has
// never seen a command. It reports whether an account was created.
func (a *App) SeedDefaultAccount(ctx context.Context) (bool, error) {
	cmds, err := a.Service.Commands(ctx)
	if err != nil {
		return false, err
	}
	if len(cmds) > 0 {
		return false, nil
	}
	_, err = a.Service.Account.CreateAccount(ctx, service.CreateAccountInput{
		Name:  constants.DefaultVirtualName,
		Notes: constants.DefaultVirtualNotes,
		Kind:  model.Virtual,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create default account: %w", err)
	}
	return true, nil
}

// Options maps the ledger section of the config onto service options.
func Options(cfg *config.Config) service.Options {
	return service.Options{
		Policy: ledger.Policy{
			AllowDisableWithBalance: cfg.Ledger.AllowDisableWithBalance,
			AllowOverdraft:          cfg.Ledger.AllowOverdraft,
		},
		LockTimeout:  cfg.Ledger.LockTimeout,
		RepairOnOpen: cfg.Storage.RepairOnOpen,
	}
}

// OpenBackend opens the relational or the file-tree store. An empty path
// falls back to the user data directory.
func OpenBackend(sc config.StorageConfig) (store.Backend, error) {
	path, err := StoragePath(sc)
	if err != nil {
		return nil, err
	}
	switch sc.Backend {
	case constants.BackendFiles:
		return store.OpenFileStore(path)
	case constants.BackendSQLite, "":
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("can not create data directory: %w", err)
		}
		return store.NewSQLiteStore(path)
	}
	return nil, fmt.Errorf("unknown storage backend %q", sc.Backend)
}

// StoragePath resolves where the configured backend keeps its data.
func StoragePath(sc config.StorageConfig) (string, error) {
	if sc.Path != "" {
		return sc.Path, nil
	}
	appDir, err := DataDir()
	if err != nil {
		return "", err
	}
	if sc.Backend == constants.BackendFiles {
		return filepath.Join(appDir, constants.FilesDirName), nil
	}
	return filepath.Join(appDir, constants.DBFileName), nil
}

// DataDir is where config and data live when no path is configured.
func DataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, constants.DefaultDataDir), nil
	}

	return filepath.Join(configDir, "tally"), nil
}

// Provider returns the opened App, opening it on first use.
type Provider func() (*App, error)

// Lazy defers NewApp until a command actually needs the ledger, so commands
// such as init and info run without taking the store lock.
func Lazy(ctx context.Context, cfg *config.Config) (Provider, func()) {
	var (
		a       *App
		cleanup func()
		err     error
		opened  bool
	)
	get := func() (*App, error) {
		if !opened {
			opened = true
			a, cleanup, err = NewApp(ctx, cfg)
		}
		return a, err
	}
	closeFn := func() {
		if cleanup != nil {
			cleanup()
		}
	}
	return get, closeFn
}
