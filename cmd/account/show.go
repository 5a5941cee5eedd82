package account

import (
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/ui/views"
)

type ShowCommandRunner struct {
	getApp app.Provider
	limit  int
	cmd    *cobra.Command
}

func NewShowCmd(getApp app.Provider) *cobra.Command {
	runner := &ShowCommandRunner{getApp: getApp}

	cmd := &cobra.Command{
		Use:   "show <account>",
		Short: "Show one account and its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.cmd = cmd
			return runner.Run(args[0])
		},
	}

	cmd.Flags().IntVarP(&runner.limit, "limit", "l", 20, "show only the last N transactions (0 for all)")
	return cmd
}

func (r *ShowCommandRunner) Run(ref string) error {
	a, err := r.getApp()
	if err != nil {
		return err
	}
	ctx := r.cmd.Context()

	acc, err := a.Service.Account.Resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := views.RenderAccountDetail(acc); err != nil {
		return err
	}

	txs, err := a.Service.Transaction.GetTransactions(ctx, acc.ID)
	if err != nil {
		return err
	}
	all, err := a.Service.Account.GetAllAccounts(ctx)
	if err != nil {
		return err
	}
	return views.NewTransactionListView(views.NamesOf(all)).Render(txs, r.limit)
}
