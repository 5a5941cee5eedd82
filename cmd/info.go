package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/ui/views"
)

type infoRunner struct {
	state *rootState
	cmd   *cobra.Command
}

func NewInfoCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, storage location, and ledger size.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				state: state,
				cmd:   cmd,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	cfg := r.state.cfg

	storagePath, err := app.StoragePath(cfg.Storage)
	if err != nil {
		return err
	}

	storageExists := false
	if _, err := os.Stat(storagePath); err == nil {
		storageExists = true
	}

	items := views.SystemInfoItem{
		ConfigPath:      cfg.ConfigPath,
		Backend:         cfg.Storage.Backend,
		StoragePath:     storagePath,
		StorageExists:   storageExists,
		DefaultCurrency: cfg.Defaults.Currency,
		LogLevel:        cfg.Log.Level,
	}

	if storageExists {
		a, err := r.state.App()
		if err != nil {
			return err
		}
		snap, err := a.Service.Snapshot(r.cmd.Context())
		if err != nil {
			return err
		}
		cmds, err := a.Service.Commands(r.cmd.Context())
		if err != nil {
			return err
		}
		items.Commands = len(cmds)
		items.Accounts = len(snap.Accounts)
		items.Transactions = len(snap.Transactions)
	}

	return views.RenderSystemInfo(items)
}
