package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/ledger"
	"github.com/hance08/tally/internal/service"
)

// RenderResult reports what an applied command changed.
func RenderResult(r ledger.Result) {
	if r.Duplicate {
		pterm.Info.Printf("Command %s was already applied, nothing changed\n", r.CommandID)
	} else {
		pterm.Success.Printf("Applied %s %s\n", r.Kind, r.CommandID)
	}
	for _, acc := range r.Accounts {
		balance := acc.Balances.String()
		if balance == "" {
			balance = "0"
		}
		pterm.Printf("  %s  %s  %s\n", acc.ID, acc.Name, balance)
	}
}

func RenderVerifyReport(r service.Report) error {
	pterm.Success.Println("Ledger is consistent")
	return pterm.DefaultTable.WithData(pterm.TableData{
		{"Commands", pterm.Sprint(r.Commands)},
		{"Accounts", pterm.Sprint(r.Accounts)},
		{"Transactions", pterm.Sprint(r.Transactions)},
		{"Digest", r.Digest},
	}).Render()
}
