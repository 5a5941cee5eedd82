package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/ui/views"
)

type logFlags struct {
	Limit int
	JSON  bool
}

type logRunner struct {
	state *rootState
	flags *logFlags
	cmd   *cobra.Command
}

func NewLogCmd(state *rootState) *cobra.Command {
	flags := &logFlags{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the command log",
		Long: `Show the command log in the order commands were applied.
With --json every command is printed on its own line in wire form, ready to
be fed to "tally apply".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &logRunner{
				state: state,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run()
		},
	}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 20, "show only the last N commands (0 for all)")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "print every command as a JSON line")

	return cmd
}

func (r *logRunner) Run() error {
	a, err := r.state.App()
	if err != nil {
		return err
	}
	cmds, err := a.Service.Commands(r.cmd.Context())
	if err != nil {
		return err
	}

	if r.flags.JSON {
		enc := json.NewEncoder(r.cmd.OutOrStdout())
		for _, c := range cmds {
			if err := enc.Encode(c); err != nil {
				return err
			}
		}
		return nil
	}
	return views.RenderCommandLog(cmds, r.flags.Limit)
}
