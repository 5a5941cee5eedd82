package transaction

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/app"
	apperrors "github.com/hance08/tally/internal/errors"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui/views"
)

type ShowCommandRunner struct {
	getApp app.Provider
	cmd    *cobra.Command
}

func NewShowCmd(getApp app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction id>",
		Short: "Show a transaction and its balance effects",
		Long: `Show a transaction and its balance effects.
The id may be given in full or as its last words, as printed by "tally tx list".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ShowCommandRunner{
				getApp: getApp,
				cmd:    cmd,
			}
			return runner.Run(args[0])
		},
	}
}

func (r *ShowCommandRunner) Run(ref string) error {
	a, err := r.getApp()
	if err != nil {
		return err
	}
	ctx := r.cmd.Context()

	txs, err := a.Service.Transaction.GetTransactions(ctx, "")
	if err != nil {
		return err
	}
	tx, err := findTransaction(txs, ref)
	if err != nil {
		return err
	}

	all, err := a.Service.Account.GetAllAccounts(ctx)
	if err != nil {
		return err
	}
	return views.RenderTransactionDetail(tx, views.NamesOf(all))
}

// findTransaction matches a full id or a unique id suffix.
func findTransaction(txs []model.Transaction, ref string) (model.Transaction, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "…")
	var matches []model.Transaction
	for _, tx := range txs {
		if string(tx.ID) == ref {
			return tx, nil
		}
		if strings.HasSuffix(string(tx.ID), "-"+ref) {
			matches = append(matches, tx)
		}
	}
	switch len(matches) {
	case 0:
		return model.Transaction{}, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("no transaction matches %q", ref))
	case 1:
		return matches[0], nil
	}
	return model.Transaction{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
		fmt.Sprintf("%d transactions match %q, give more of the id", len(matches), ref))
}
