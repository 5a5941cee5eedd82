package account

import (
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/app"
)

func NewAccountCmd(getApp app.Provider) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"acc"},
		Short:   "Create, edit, disable accounts and show their balances.",
		Long: `Create, edit, disable accounts and show their balances.

Physical accounts hold money (a bank account, a wallet). Virtual accounts are
budgets the money is earmarked for. Accounts are referenced by id or by name.`,
	}

	accountCmd.AddCommand(NewCreateCmd(getApp))
	accountCmd.AddCommand(NewListCmd(getApp))
	accountCmd.AddCommand(NewShowCmd(getApp))
	accountCmd.AddCommand(NewUpdateCmd(getApp))
	accountCmd.AddCommand(NewToggleCmd(getApp, false))
	accountCmd.AddCommand(NewToggleCmd(getApp, true))

	return accountCmd
}
