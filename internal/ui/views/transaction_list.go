package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/utils"
)

type TransactionListView struct {
	names Names
}

func NewTransactionListView(names Names) *TransactionListView {
	return &TransactionListView{names: names}
}

// Render lists txs, newest last. A positive limit keeps only the last limit rows.
func (v *TransactionListView) Render(txs []model.Transaction, limit int) error {
	if len(txs) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}
	total := len(txs)
	if limit > 0 && len(txs) > limit {
		txs = txs[len(txs)-limit:]
		pterm.DefaultSection.Printf("Showing the last %d of %d transactions", limit, total)
	} else {
		pterm.DefaultSection.Printf("Transactions")
	}

	tableData := pterm.TableData{
		{"ID", "Type", "Amount", "Account", "Budget", "Counterparty", "Notes"},
	}

	for _, tx := range txs {
		acc2 := v.names.Name(tx.Acc2)
		if tx.Kind == model.Opening {
			acc2 = "-"
		}
		tableData = append(tableData, []string{
			utils.ShortID(string(tx.ID), 2),
			ui.TxColor(tx.Kind, KindLabel(tx.Kind)),
			ui.TxColor(tx.Kind, tx.Amount.String()),
			utils.Truncate(v.names.Name(tx.Acc1), constants.NameColumnWidth),
			utils.Truncate(acc2, constants.NameColumnWidth),
			utils.OrDash(v.names.Counterparty(tx)),
			utils.Truncate(utils.OrDash(tx.Notes), constants.NameColumnWidth),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", total)
	return nil
}
