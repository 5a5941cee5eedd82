package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/utils"
)

func RenderCommandLog(cmds []model.Command, limit int) error {
	if len(cmds) == 0 {
		pterm.Warning.Println("The command log is empty")
		return nil
	}
	total := len(cmds)
	if limit > 0 && len(cmds) > limit {
		cmds = cmds[len(cmds)-limit:]
	}

	tableData := pterm.TableData{{"#", "Command ID", "Kind", "Details"}}
	for i, cmd := range cmds {
		tableData = append(tableData, []string{
			pterm.Sprint(total - len(cmds) + i + 1),
			string(cmd.ID),
			string(cmd.Payload.Kind()),
			utils.Truncate(cmd.Payload.Describe(), 80),
		})
	}

	pterm.DefaultSection.Printf("Command Log")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d commands\n", total)
	return nil
}
