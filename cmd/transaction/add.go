package transaction

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/errhandler"
	"github.com/hance08/tally/internal/ledger"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/ui/prompts"
	"github.com/hance08/tally/internal/ui/views"
)

type addRunner struct {
	getApp app.Provider
	cmd    *cobra.Command
}

// NewAddCmd is the guided way to record a transaction.
func NewAddCmd(getApp app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Record a transaction interactively",
		Long: `Record a transaction step by step: pick the type, the accounts and the
amount, review the balance changes, then confirm.

For scripting use the flag-based commands under "tally tx".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &addRunner{
				getApp: getApp,
				cmd:    cmd,
			}
			return runner.Run()
		},
	}
}

func (r *addRunner) Run() error {
	a, err := r.getApp()
	if err != nil {
		return err
	}
	ctx := r.cmd.Context()

	accounts, err := a.Service.Account.GetAllAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}

	ui.PrintL1Title("New Transaction")

	in, err := r.interactiveMode(accounts, a.Config.Defaults.Currency)
	if err != nil {
		return err
	}

	names := views.NamesOf(accounts)
	if err := views.RenderTransactionSummary(previewTransaction(in), names); err != nil {
		return err
	}

	ok, err := prompts.PromptConfirm("Record this transaction?", true)
	if err != nil {
		return err
	}
	if !ok {
		pterm.Info.Println("Transaction discarded")
		return nil
	}

	res, err := a.Service.Transaction.AddTransaction(ctx, in)
	if err != nil {
		return err
	}
	return renderRecorded(ctx, a, res)
}

func (r *addRunner) interactiveMode(accounts []model.AccountView, currency string) (service.TransactionInput, error) {
	kind, err := prompts.PromptTransactionKind()
	if err != nil {
		return service.TransactionInput{}, err
	}
	kind1, kind2, _ := model.SlotKinds(kind)
	label1, label2 := views.SlotLabels(kind)

	in := service.TransactionInput{Kind: kind}

	in.Acc1, err = prompts.PromptAccountSelection(accounts, kind1, errhandler.Capitalize(label1)+":", "")
	if err != nil {
		return service.TransactionInput{}, err
	}
	exclude := model.AccountID("")
	if kind1 == kind2 {
		exclude = in.Acc1
	}
	in.Acc2, err = prompts.PromptAccountSelection(accounts, kind2, errhandler.Capitalize(label2)+":", exclude)
	if err != nil {
		return service.TransactionInput{}, err
	}

	in.Amount, err = prompts.PromptTransactionAmount("Amount:", currency)
	if err != nil {
		return service.TransactionInput{}, err
	}
	if kind == model.Convert {
		n, err := prompts.PromptTransactionAmount("Amount after conversion:", currency)
		if err != nil {
			return service.TransactionInput{}, err
		}
		in.NewAmount = &n
	}

	if kind.HasExternalParty() {
		in.Party, err = prompts.PromptParty(kind)
		if err != nil {
			return service.TransactionInput{}, err
		}
	}

	in.Notes, err = prompts.PromptNotes("Notes:", "")
	if err != nil {
		return service.TransactionInput{}, err
	}
	return in, nil
}

// previewTransaction shapes an input like the transaction it will become.
func previewTransaction(in service.TransactionInput) model.Transaction {
	tx := model.Transaction{
		Notes:     in.Notes,
		Amount:    in.Amount,
		Kind:      in.Kind,
		NewAmount: in.NewAmount,
		Acc1:      in.Acc1,
		Acc2:      in.Acc2,
	}
	if in.Kind.HasExternalParty() {
		party := in.Party
		tx.ExternalParty = &party
	}
	return tx
}

func renderRecorded(ctx context.Context, a *app.App, res ledger.Result) error {
	all, err := a.Service.Account.GetAllAccounts(ctx)
	if err != nil {
		return err
	}
	for _, tx := range res.Transactions {
		if err := views.RenderTransactionDetail(tx, views.NamesOf(all)); err != nil {
			return err
		}
	}
	pterm.Println()
	views.RenderResult(res)
	return nil
}
