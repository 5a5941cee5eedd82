package transaction

import (
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui/views"
)

type listFlags struct {
	Account string
	Type    string
	Limit   int
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
		Short:   "List transactions",
		Long: `List transactions, optionally only those touching one account.
An account's transactions are listed in the order they were applied.`,
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

	cmd.Flags().StringVarP(&flags.Account, "account", "a", "", "only transactions of this account (name or id)")
	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "only transactions of this type, e.g. Paid")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 20, "show only the last N transactions (0 for all)")

	return cmd
}

func (r *ListCommandRunner) Run() error {
	a, err := r.getApp()
	if err != nil {
		return err
	}
	ctx := r.cmd.Context()

	var accountID model.AccountID
	if r.flags.Account != "" {
		acc, err := a.Service.Account.Resolve(ctx, r.flags.Account)
		if err != nil {
			return err
		}
		accountID = acc.ID
	}

	txs, err := a.Service.Transaction.GetTransactions(ctx, accountID)
	if err != nil {
		return err
	}
	if r.flags.Type != "" {
		kind, err := model.ParseTransactionKind(r.flags.Type)
		if err != nil {
			return err
		}
		txs = filterKind(txs, kind)
	}

	all, err := a.Service.Account.GetAllAccounts(ctx)
	if err != nil {
		return err
	}
	return views.NewTransactionListView(views.NamesOf(all)).Render(txs, r.flags.Limit)
}

func filterKind(txs []model.Transaction, kind model.TransactionKind) []model.Transaction {
	var out []model.Transaction
	for _, tx := range txs {
		if tx.Kind == kind {
			out = append(out, tx)
		}
	}
	return out
}
