package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/utils"
)

func RenderAccountDetail(acc model.AccountView) error {
	ui.Separator()

	status := pterm.Green("Enabled")
	if !acc.Enabled {
		status = pterm.Gray("Disabled")
	}

	tableData := pterm.TableData{
		{pterm.Blue("ID"), string(acc.ID)},
		{pterm.Blue("Name"), acc.Name},
		{pterm.Blue("Type"), ui.KindColor(acc.Kind, string(acc.Kind))},
		{pterm.Blue("Status"), status},
		{pterm.Blue("Notes"), utils.OrDash(acc.Notes)},
	}
	if len(acc.Balances) == 0 {
		tableData = append(tableData, []string{pterm.Blue("Balance"), "0"})
	}
	for _, c := range acc.Balances.Currencies() {
		tableData = append(tableData, []string{pterm.Blue("Balance " + string(c)), ui.BalancesColor(model.Balances{c: acc.Balances.Get(c)})})
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}

func RenderAccountSuccess(acc model.AccountView, verb string) error {
	ui.Separator()

	tableData := pterm.TableData{
		{pterm.Blue("Account ID"), string(acc.ID)},
		{pterm.Blue("Name"), acc.Name},
	}

	if err := pterm.DefaultTable.WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Success.Printf("Account %s successfully!\n", verb)

	return nil
}
