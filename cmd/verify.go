package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/ui/views"
)

func NewVerifyCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check balances and stored projections against the command log",
		Long: `Replay the command log from scratch and compare the result with the live
balances and with what the storage backend holds. Exits with status 2 when
they disagree; run with storage.repair_on_open to rebuild.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := state.App()
			if err != nil {
				return err
			}
			report, err := a.Service.Verify(cmd.Context())
			if err != nil {
				return err
			}
			return views.RenderVerifyReport(report)
		},
	}
}
