package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/errhandler"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui/views"
)

type applyFlags struct {
	KeepGoing bool
	Quiet     bool
}

type applyRunner struct {
	state *rootState
	flags *applyFlags
	cmd   *cobra.Command
}

func NewApplyCmd(state *rootState) *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply [file]",
		Short: "Apply commands in their JSON wire form",
		Long: `Apply commands in their JSON wire form, read from a file or stdin.

The input may be a single command, a JSON array of commands, or one command
per line (the output of "tally log --json"). Commands already in the log are
skipped, so a partially applied file can be applied again.

  tally log --json > backup.ndjson
  tally --config other.yaml apply backup.ndjson`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &applyRunner{
				state: state,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run(args)
		},
	}

	cmd.Flags().BoolVarP(&flags.KeepGoing, "keep-going", "k", false, "continue after a rejected command")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "only print the summary")

	return cmd
}

func (r *applyRunner) Run(args []string) error {
	in := io.Reader(r.cmd.InOrStdin())
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	cmds, err := decodeCommands(in)
	if err != nil {
		return err
	}

	a, err := r.state.App()
	if err != nil {
		return err
	}
	return r.applyAll(a.Service, cmds)
}

func (r *applyRunner) applyAll(svc *service.Service, cmds []model.Command) error {
	var applied, duplicates, rejected int
	var firstErr error
	for _, c := range cmds {
		res, err := svc.Apply(r.cmd.Context(), c)
		if err != nil {
			rejected++
			if firstErr == nil {
				firstErr = fmt.Errorf("command %s: %w", c.ID, err)
			}
			if !r.flags.KeepGoing {
				break
			}
			pterm.Error.Printf("Command %s: %s\n", c.ID, errhandler.Capitalize(err.Error()))
			continue
		}
		if res.Duplicate {
			duplicates++
		} else {
			applied++
		}
		if !r.flags.Quiet {
			views.RenderResult(res)
		}
	}

	pterm.Info.Printf("%d applied, %d already present, %d rejected\n", applied, duplicates, rejected)
	return firstErr
}

// decodeCommands accepts a single command, an array, or a stream of commands.
func decodeCommands(in io.Reader) ([]model.Command, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var cmds []model.Command
		if err := json.Unmarshal(data, &cmds); err != nil {
			return nil, err
		}
		return cmds, nil
	}

	var cmds []model.Command
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var c model.Command
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("command %d: %w", len(cmds)+1, err)
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}
