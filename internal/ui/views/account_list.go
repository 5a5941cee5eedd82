package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/utils"
)

type AccountListView struct{}

func NewAccountListView() *AccountListView {
	return &AccountListView{}
}

func (v *AccountListView) Render(accounts []model.AccountView, fullIDs bool) error {
	if len(accounts) == 0 {
		pterm.Warning.Println("No accounts yet, create one with `tally account create`")
		return nil
	}

	tableData := pterm.TableData{{"ID", "Name", "Type", "Balance", "Status"}}

	for _, acc := range accounts {
		id := string(acc.ID)
		if !fullIDs {
			id = utils.ShortID(id, 2)
		}
		status := pterm.Green("enabled")
		if !acc.Enabled {
			status = pterm.Gray("disabled")
		}
		balance := "0"
		if len(acc.Balances) > 0 {
			balance = ui.BalancesColor(acc.Balances)
		}
		tableData = append(tableData, []string{
			id,
			ui.KindColor(acc.Kind, utils.Truncate(acc.Name, constants.NameColumnWidth)),
			ui.KindColor(acc.Kind, string(acc.Kind)),
			balance,
			status,
		})
	}

	pterm.DefaultSection.Printf("Account List")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts\n", len(accounts))

	return nil
}
