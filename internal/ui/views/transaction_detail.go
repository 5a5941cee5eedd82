package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/utils"
)

func RenderTransactionDetail(tx model.Transaction, names Names) error {
	pterm.Println()
	ui.PrintL2Title("Transaction Info")
	infoData := pterm.TableData{
		{"Field", "Value"},
		{"ID", string(tx.ID)},
		{"Type", ui.TxColor(tx.Kind, KindLabel(tx.Kind))},
		{"Amount", tx.Amount.String()},
	}
	if tx.NewAmount != nil {
		infoData = append(infoData, []string{"New amount", tx.NewAmount.String()})
	}
	if tx.Kind.HasExternalParty() {
		infoData = append(infoData, []string{"Counterparty", tx.Party()})
	}
	infoData = append(infoData, []string{"Notes", utils.OrDash(tx.Notes)})

	if err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(infoData).
		Render(); err != nil {
		return err
	}

	pterm.Println()
	ui.PrintL2Title("Postings")
	return renderPostings(tx, names)
}

func renderPostings(tx model.Transaction, names Names) error {
	label1, label2 := SlotLabels(tx.Kind)
	postingData := pterm.TableData{
		{"Account", "Role", "Change"},
	}
	for _, p := range tx.Postings() {
		role := label1
		if p.Account == tx.Acc2 && tx.Acc1 != tx.Acc2 {
			role = label2
		}
		change := pterm.Green("+" + p.Amount.String())
		if p.Amount.IsNegative() {
			change = pterm.Red(p.Amount.String())
		}
		postingData = append(postingData, []string{names.Name(p.Account), role, change})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(postingData).
		Render()
}
