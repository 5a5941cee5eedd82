package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/utils"
)

// RenderTransactionSummary previews a transaction before it is submitted.
func RenderTransactionSummary(tx model.Transaction, names Names) error {
	pterm.DefaultSection.Println("Transaction Summary")

	tableData := pterm.TableData{
		{"Field", "Value"},
		{"Type", KindLabel(tx.Kind)},
		{"Amount", tx.Amount.String()},
	}
	if tx.NewAmount != nil {
		tableData = append(tableData, []string{"New amount", tx.NewAmount.String()})
	}
	if tx.Kind.HasExternalParty() {
		tableData = append(tableData, []string{"Counterparty", tx.Party()})
	}
	tableData = append(tableData, []string{"Notes", utils.OrDash(tx.Notes)})

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Balance Changes")
	return renderPostings(tx, names)
}
