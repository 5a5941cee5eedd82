package transaction

import (
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/model"
)

// NewTransactionCmd groups the transaction commands.
func NewTransactionCmd(getApp app.Provider) *cobra.Command {
	txCmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Record and inspect transactions",
		Long: `Record and inspect transactions.

Every transaction touches exactly two accounts:
  received   money comes in from outside: +physical, +budget
  paid       money goes out:              -physical, -budget
  move-phys  between physical accounts (e.g. cash withdrawal)
  move-virt  between budgets (re-allocation)
  convert    currency exchange inside one physical account and one budget`,
	}

	for _, k := range kindCommands {
		txCmd.AddCommand(newKindCmd(getApp, k))
	}
	txCmd.AddCommand(NewListCmd(getApp))
	txCmd.AddCommand(NewShowCmd(getApp))

	return txCmd
}

// kindCommand describes the flags of one transaction kind.
type kindCommand struct {
	use     string
	kind    model.TransactionKind
	short   string
	acc1    string
	acc2    string
	party   string
	example string
}

var kindCommands = []kindCommand{
	{
		use: "received <amount>", kind: model.Received, short: "Record money received from outside",
		acc1: "account", acc2: "budget", party: "from",
		example: `tally tx received "2500 EUR" --from Employer --account Bank --budget Salary`,
	},
	{
		use: "paid <amount>", kind: model.Paid, short: "Record money paid to someone",
		acc1: "account", acc2: "budget", party: "to",
		example: `tally tx paid 12.50 --to Bakery --account Wallet --budget Food`,
	},
	{
		use: "move-phys <amount>", kind: model.MovePhys, short: "Move money between physical accounts",
		acc1: "from", acc2: "to",
		example: `tally tx move-phys 200 --from Bank --to Wallet`,
	},
	{
		use: "move-virt <amount>", kind: model.MoveVirt, short: "Move money between budgets",
		acc1: "from", acc2: "to",
		example: `tally tx move-virt 50 --from Salary --to Holiday`,
	},
	{
		use: "convert <amount>", kind: model.Convert, short: "Exchange currency within an account and a budget",
		acc1: "account", acc2: "budget",
		example: `tally tx convert "100 EUR" --into "108.20 USD" --account Bank --budget Travel`,
	},
}
