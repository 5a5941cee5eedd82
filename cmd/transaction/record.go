package transaction

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui/prompts"
	"github.com/hance08/tally/internal/ui/views"
)

type recordFlags struct {
	Acc1      string
	Acc2      string
	Party     string
	NewAmount string
	Notes     string
}

type recordRunner struct {
	getApp app.Provider
	spec   kindCommand
	flags  *recordFlags
	cmd    *cobra.Command
}

func newKindCmd(getApp app.Provider, spec kindCommand) *cobra.Command {
	flags := &recordFlags{}
	label1, label2 := views.SlotLabels(spec.kind)

	cmd := &cobra.Command{
		Use:     spec.use,
		Short:   spec.short,
		Example: "  " + spec.example,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &recordRunner{
				getApp: getApp,
				spec:   spec,
				flags:  flags,
				cmd:    cmd,
			}
			return runner.Run(args[0])
		},
	}

	cmd.Flags().StringVar(&flags.Acc1, spec.acc1, "", fmt.Sprintf("%s, by name or id", label1))
	cmd.Flags().StringVar(&flags.Acc2, spec.acc2, "", fmt.Sprintf("%s, by name or id", label2))
	_ = cmd.MarkFlagRequired(spec.acc1)
	_ = cmd.MarkFlagRequired(spec.acc2)
	if spec.party != "" {
		cmd.Flags().StringVar(&flags.Party, spec.party, "", "counterparty outside the ledger")
		_ = cmd.MarkFlagRequired(spec.party)
	}
	if spec.kind == model.Convert {
		cmd.Flags().StringVar(&flags.NewAmount, "into", "", "amount after conversion")
		_ = cmd.MarkFlagRequired("into")
	}
	cmd.Flags().StringVar(&flags.Notes, "notes", "", "free-text notes")

	return cmd
}

func (r *recordRunner) Run(amount string) error {
	a, err := r.getApp()
	if err != nil {
		return err
	}
	ctx := r.cmd.Context()
	currency := a.Config.Defaults.Currency

	amt, err := prompts.ParseAmount(amount, currency)
	if err != nil {
		return err
	}
	raw := service.RawTransactionInput{
		Kind:   r.spec.kind,
		Amount: amt.String(),
		Party:  r.flags.Party,
		Acc1:   r.flags.Acc1,
		Acc2:   r.flags.Acc2,
		Notes:  r.flags.Notes,
	}
	if r.spec.kind == model.Convert {
		n, err := prompts.ParseAmount(r.flags.NewAmount, currency)
		if err != nil {
			return err
		}
		raw.NewAmount = n.String()
	}

	in, err := a.Service.Transaction.ParseTransactionInput(ctx, raw)
	if err != nil {
		return err
	}
	res, err := a.Service.Transaction.AddTransaction(ctx, in)
	if err != nil {
		return err
	}
	return renderRecorded(ctx, a, res)
}
