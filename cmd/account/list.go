package account

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui/views"
)

type listFlags struct {
	Type        string
	EnabledOnly bool
	FullIDs     bool
}

type ListCommandRunner struct {
	getApp app.Provider
	flags  *listFlags
	cmd    *cobra.Command
}

func NewListCmd(getApp app.Provider) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all accounts with their balances",
		Long: `List all accounts with their current balances.
You can filter by account type or hide disabled accounts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{
				getApp: getApp,
				flags:  flags,
				cmd:    cmd,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Filter accounts by type (physical, virtual)")
	cmd.Flags().BoolVarP(&flags.EnabledOnly, "enabled", "e", false, "Hide disabled accounts")
	cmd.Flags().BoolVar(&flags.FullIDs, "full-ids", false, "Show complete account ids")

	return cmd
}

func (r *ListCommandRunner) Run() error {
	a, err := r.getApp()
	if err != nil {
		return err
	}

	var accounts []model.AccountView
	if r.flags.Type != "" {
		kind, kerr := model.ParseAccountKind(r.flags.Type)
		if kerr != nil {
			return kerr
		}
		accounts, err = a.Service.Account.GetAccountsByKind(r.cmd.Context(), kind, r.flags.EnabledOnly)
	} else {
		accounts, err = a.Service.Account.GetAllAccounts(r.cmd.Context())
		if r.flags.EnabledOnly {
			accounts = filterEnabled(accounts)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	return views.NewAccountListView().Render(accounts, r.flags.FullIDs)
}

func filterEnabled(accounts []model.AccountView) []model.AccountView {
	var filtered []model.AccountView
	for _, acc := range accounts {
		if acc.Enabled {
			filtered = append(filtered, acc)
		}
	}
	return filtered
}
